package validator

// Validator bundles the tag validator and the business validator so
// services take a single dependency.
type Validator struct {
	business *BusinessValidator
}

func New() *Validator {
	return &Validator{business: NewBusinessValidator()}
}

func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// Validate validates tag rules for any struct.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	return v.business.Validate(s)
}
