package database

import (
	"rently/internal/applications"
	"rently/internal/businesses"
	"rently/internal/events"
	"rently/internal/facilities"
	"rently/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults on the models need this extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&businesses.Business{},
		&events.Event{},
		&facilities.Facility{},
		&facilities.EventFacility{},
		&applications.FacilityApplication{},
		&applications.Payment{},
	)
}
