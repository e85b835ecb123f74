package database

import (
	"log"
	"time"

	"decor-booking-server/models"
)

// SeedServices loads the starter decoration catalog on an empty database.
// Idempotent: it does nothing once any service row exists.
func SeedServices() error {
	var count int64
	if err := DB.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	today := time.Now().Format("2006-01-02")

	services := []models.Service{
		{
			ServiceName: "Classic Home Makeover",
			Category:    models.CategoryHome,
			Cost:        1200,
			Unit:        "per room",
			Description: "Full room styling with drapery, lighting accents and floral arrangements.",
		},
		{
			ServiceName: "Garden Wedding Package",
			Category:    models.CategoryWedding,
			Cost:        5500,
			Unit:        "per stage",
			Description: "Outdoor ceremony arch, aisle styling and reception table decor.",
		},
		{
			ServiceName: "Royal Wedding Stage",
			Category:    models.CategoryWedding,
			Cost:        8000,
			Unit:        "per stage",
			Description: "Premium stage backdrop with floral walls and ambient lighting.",
		},
		{
			ServiceName: "Office Launch Styling",
			Category:    models.CategoryOffice,
			Cost:        2400,
			Unit:        "per floor",
			Description: "Branded backdrops, balloon installations and reception desk decor.",
		},
		{
			ServiceName: "Seminar Hall Setup",
			Category:    models.CategorySeminar,
			Cost:        1800,
			Unit:        "per hall",
			Description: "Stage dressing, podium styling and banner placement for seminars.",
		},
		{
			ServiceName: "Executive Meeting Suite",
			Category:    models.CategoryMeeting,
			Cost:        900,
			Unit:        "per room",
			Description: "Table centerpieces, seating arrangement and subtle corporate accents.",
		},
	}

	for i := range services {
		services[i].CreatedDate = today
	}

	if err := DB.Create(&services).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d catalog services", len(services))
	return nil
}
