package services

import (
	"context"
	"fmt"
	"time"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
)

// SeedDemo inserts demo courses with slots when the catalog is empty.
// It never touches existing data.
func (s *courseService) SeedDemo(ctx context.Context) (*SeedResult, error) {
	count, err := s.repo.Course().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		return &SeedResult{
			Message: "Des cours existent déjà, aucune donnée de démo ajoutée.",
			Seeded:  false,
		}, nil
	}

	now := time.Now()
	seeds := demoCourses()

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for i, seed := range seeds {
			baseOffset := time.Duration(i*180) * time.Minute
			slots := demoSlots(seed.Modality, now, baseOffset)
			course := seed
			if err := tx.Course().CreateWithSlots(ctx, &course, slots); err != nil {
				return fmt.Errorf("failed to seed course %q: %w", seed.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Demo data seeded", "courses", len(seeds))
	return &SeedResult{
		Message: "Données de démonstration créées avec succès.",
		Seeded:  true,
	}, nil
}

func demoCourses() []models.Course {
	price := 20.0
	capSix, capEight, capFive := 6, 8, 5
	exchange := "Aide en anglais ou mathématiques"

	return []models.Course{
		{
			Title:         "Révisions Maths Bac – Limites & Continuité",
			Description:   "Séances ciblées sur les exercices classiques du bac : limites, continuité, dérivées et études de fonctions.",
			Subject:       "Mathématiques",
			Level:         "Bac",
			GoogleMeetURL: "https://meet.google.com/demo-maths-bac",
			OfferType:     models.OfferPaid,
			PricePerHour:  &price,
			Currency:      "TND",
			Modality:      models.ModalityOnline,
			Availability:  "Soirs de semaine et dimanche matin",
			Capacity:      &capSix,
		},
		{
			Title:         "Atelier conversation en anglais – niveau intermédiaire",
			Description:   "Discussions guidées autour de thèmes du quotidien pour améliorer ton aisance à l'oral.",
			Subject:       "Anglais",
			Level:         "Licence / Prépa",
			GoogleMeetURL: "https://meet.google.com/demo-english-conversation",
			OfferType:     models.OfferFree,
			Currency:      "TND",
			Modality:      models.ModalityOnline,
			Availability:  "Mercredi soir et samedi après-midi",
			Capacity:      &capEight,
		},
		{
			Title:           "Découverte du développement web",
			Description:     "Introduction pratique au HTML, CSS et JavaScript pour créer ta première page web.",
			Subject:         "Informatique",
			Level:           "Lycée / Débutant",
			GoogleMeetURL:   "https://meet.google.com/demo-web-dev",
			OfferType:       models.OfferExchange,
			Currency:        "TND",
			Modality:        models.ModalityFlexible,
			Availability:    "Horaires flexibles le week-end",
			ExchangeSubject: &exchange,
			Capacity:        &capFive,
		},
	}
}

func demoSlots(modality models.Modality, now time.Time, baseOffset time.Duration) []models.CourseSlot {
	var location1, location2 *string
	if modality == models.ModalityInPerson || modality == models.ModalityFlexible {
		l1 := "Bibliothèque centrale de Tunis"
		l2 := "Café calme près de la fac"
		location1, location2 = &l1, &l2
	}

	notes1 := "Petit groupe, idéal pour poser toutes tes questions."
	notes2 := "Session de révision rapide avant les examens."
	end1 := now.Add(baseOffset + 120*time.Minute)
	end2 := now.Add(baseOffset + 360*time.Minute)

	return []models.CourseSlot{
		{
			StartTime: now.Add(baseOffset + 60*time.Minute),
			EndTime:   &end1,
			Location:  location1,
			Notes:     &notes1,
		},
		{
			StartTime: now.Add(baseOffset + 300*time.Minute),
			EndTime:   &end2,
			Location:  location2,
			Notes:     &notes2,
		},
	}
}
