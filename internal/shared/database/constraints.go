package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints AutoMigrate cannot express.
// They back the invariants the application layer also enforces, so a
// lost race still cannot corrupt the ledger.
func MigrateConstraints(db *gorm.DB) error {
	// One live PENDING application per business and event facility.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_pending_application
		ON facility_applications (business_id, event_facility_id)
		WHERE status = 'PENDING';
	`).Error
	if err != nil {
		return err
	}

	// The quota ledger can never go negative, even if a conditional
	// update is bypassed.
	err = db.Exec(`
		ALTER TABLE event_facilities
		DROP CONSTRAINT IF EXISTS chk_available_quantity_non_negative;
	`).Error
	if err != nil {
		return err
	}
	err = db.Exec(`
		ALTER TABLE event_facilities
		ADD CONSTRAINT chk_available_quantity_non_negative
		CHECK (available_quantity >= 0);
	`).Error
	if err != nil {
		return err
	}

	// Speeds up the approval page listing and the quota sums.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_applications_facility_status
		ON facility_applications (event_facility_id, status);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_applications_business_status
		ON facility_applications (business_id, status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
