package validator

import (
	"strings"
	"time"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles struct-tag and business rule validation.
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator.
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates tag rules for any struct.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// MissingCourseFields returns the required course-create fields that
// are absent, in the order the API contract reports them. "slots" is
// reported when no slot survives filtering.
func (bv *BusinessValidator) MissingCourseFields(req *CourseCreateRequest) []string {
	var missing []string

	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(req.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(req.Level) == "" {
		missing = append(missing, "level")
	}
	if strings.TrimSpace(req.GoogleMeetURL) == "" {
		missing = append(missing, "googleMeetUrl")
	}
	if len(FilterSlots(req.Slots)) == 0 {
		missing = append(missing, "slots")
	}

	return missing
}

// ValidateCourseCreate validates course creation business rules.
// Missing-field reporting is separate (MissingCourseFields) so the
// handler can keep the missingFields response contract.
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validateSlotChronology(req.Slots)...)

	if req.OfferType != "" && !models.OfferType(req.OfferType).Valid() {
		errors = append(errors, ValidationError{
			Field:   "offerType",
			Message: "must be PAID, FREE or EXCHANGE",
			Value:   req.OfferType,
			Rule:    "offer_type",
		})
	}

	return errors
}

// ValidateRequestCreate validates a join request.
func (bv *BusinessValidator) ValidateRequestCreate(req *RequestCreateRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateChat bounds the chat widget's forwarded history (roles and
// sizes); the message itself is checked in the service.
func (bv *BusinessValidator) ValidateChat(req *ChatRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateProfileUpdate validates a profile upsert payload.
func (bv *BusinessValidator) ValidateProfileUpdate(req *ProfileUpdateRequest) ValidationErrors {
	return bv.Validate(req)
}

// FilterSlots keeps only the entries with a non-empty startTime.
// Everything else about a slot is optional at this stage.
func FilterSlots(slots []SlotRequest) []SlotRequest {
	valid := make([]SlotRequest, 0, len(slots))
	for _, s := range slots {
		if strings.TrimSpace(s.StartTime) != "" {
			valid = append(valid, s)
		}
	}
	return valid
}

// ParseSlot parses a surviving slot's timestamps.
func ParseSlot(s SlotRequest) (start time.Time, end *time.Time, err error) {
	start, err = time.Parse(time.RFC3339, s.StartTime)
	if err != nil {
		return time.Time{}, nil, err
	}
	if s.EndTime != nil && strings.TrimSpace(*s.EndTime) != "" {
		t, perr := time.Parse(time.RFC3339, *s.EndTime)
		if perr != nil {
			return time.Time{}, nil, perr
		}
		end = &t
	}
	return start, end, nil
}

// validateSlotChronology rejects slots whose end precedes their start.
// Unparseable timestamps are reported here too instead of surfacing a
// bare parse error from the service.
func (bv *BusinessValidator) validateSlotChronology(slots []SlotRequest) ValidationErrors {
	var errors ValidationErrors

	for i, s := range FilterSlots(slots) {
		start, end, err := ParseSlot(s)
		if err != nil {
			errors = append(errors, ValidationError{
				Field:   "slots",
				Message: "contains an invalid timestamp",
				Value:   s.StartTime,
				Rule:    "timestamp",
			})
			continue
		}
		if end != nil && end.Before(start) {
			errors = append(errors, ValidationError{
				Field:   "slots",
				Message: "endTime must not precede startTime",
				Value:   i,
				Rule:    "slot_chronology",
			})
		}
	}

	return errors
}

// registerBusinessRules registers custom tag validators for the
// domain enums.
func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("offer_type", func(fl validator.FieldLevel) bool {
		return models.OfferType(fl.Field().String()).Valid()
	})

	bv.validate.RegisterValidation("modality", func(fl validator.FieldLevel) bool {
		return models.Modality(fl.Field().String()).Valid()
	})

	bv.validate.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return models.PaymentMethod(fl.Field().String()).Valid()
	})

}
