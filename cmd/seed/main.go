package main

import (
	"fmt"
	"log"
	"time"

	"rently/internal/applications"
	"rently/internal/businesses"
	"rently/internal/events"
	"rently/internal/facilities"
	"rently/internal/shared/config"
	"rently/internal/shared/database"
	"rently/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB

	mpp         *users.User
	studentUser *users.User
	nonStudent  *users.User

	studentBusiness *businesses.Business
	foodTruck       *businesses.Business

	bazaar *events.Event
	expo   *events.Event

	stallLot *facilities.Facility
	tent     *facilities.Facility
	booth    *facilities.Facility
}

func main() {
	fmt.Println("Starting Rently database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed, database is ready for testing.")
	fmt.Println("  MPP admin:          mpp@rently.test / password123")
	fmt.Println("  Student owner:      aina@student.test / password123")
	fmt.Println("  Non-student owner:  rahim@vendor.test / password123")
}

// CleanDatabase truncates every table in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"facility_applications",
		"event_facilities",
		"facilities",
		"events",
		"businesses",
		"users",
	}
	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	if err := s.seedBusinesses(); err != nil {
		return err
	}
	if err := s.seedFacilities(); err != nil {
		return err
	}
	if err := s.seedEvents(); err != nil {
		return err
	}
	return s.seedApplications()
}

func (s *Seeder) seedUsers() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mpp = &users.User{
		Name:        "MPP Admin",
		Email:       "mpp@rently.test",
		PhoneNumber: "+60123400001",
		Password:    string(hash),
		Category:    users.CategoryMPP,
		Status:      users.StatusActive,
	}
	s.studentUser = &users.User{
		Name:        "Aina Binti Hassan",
		Email:       "aina@student.test",
		PhoneNumber: "+60123400002",
		Password:    string(hash),
		Category:    users.CategoryStudent,
		Status:      users.StatusActive,
		Address:     "Kolej Kediaman 4, Universiti Malaya",

		BankName:          "Maybank",
		BankAccountNumber: "157023456789",
	}
	s.nonStudent = &users.User{
		Name:        "Rahim Bin Abdullah",
		Email:       "rahim@vendor.test",
		PhoneNumber: "+60123400003",
		Password:    string(hash),
		Category:    users.CategoryNonStudent,
		Status:      users.StatusActive,
		Address:     "12 Jalan Universiti, Petaling Jaya",

		BankName:          "CIMB Bank",
		BankAccountNumber: "800298765432",
	}

	for _, user := range []*users.User{s.mpp, s.studentUser, s.nonStudent} {
		if err := s.db.PostgreSQL.Create(user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", user.Email, err)
		}
	}
	fmt.Printf("  seeded %d users\n", 3)
	return nil
}

func (s *Seeder) seedBusinesses() error {
	s.studentBusiness = &businesses.Business{
		OwnerID:     s.studentUser.ID,
		Name:        "Aina's Handmade Crafts",
		Category:    "Arts & Crafts",
		Description: "Handmade jewellery and crochet goods",
		Status:      businesses.StatusActive,
	}
	s.foodTruck = &businesses.Business{
		OwnerID:     s.nonStudent.ID,
		Name:        "Rahim's Satay House",
		SSMNumber:   "202301012345",
		Category:    "Food & Beverage",
		Description: "Charcoal grilled satay and traditional drinks",
		Status:      businesses.StatusActive,
	}

	for _, business := range []*businesses.Business{s.studentBusiness, s.foodTruck} {
		if err := s.db.PostgreSQL.Create(business).Error; err != nil {
			return fmt.Errorf("failed to seed business %s: %w", business.Name, err)
		}
	}
	fmt.Printf("  seeded %d businesses\n", 2)
	return nil
}

func (s *Seeder) seedFacilities() error {
	s.stallLot = &facilities.Facility{
		Name:                "Stall Lot",
		Size:                "3m x 3m",
		Type:                "stall",
		Description:         "Open stall lot with one table and two chairs",
		Usage:               "Retail and food vendors",
		BaseStudentPrice:    20.00,
		BaseNonStudentPrice: 35.00,
		Status:              facilities.FacilityStatusActive,
	}
	s.tent = &facilities.Facility{
		Name:                "Canopy Tent",
		Size:                "6m x 6m",
		Type:                "tent",
		Description:         "Covered canopy with power supply",
		Usage:               "Larger vendors and showcases",
		Remark:              "Power limited to 13A per tent",
		BaseStudentPrice:    50.00,
		BaseNonStudentPrice: 80.00,
		Status:              facilities.FacilityStatusActive,
	}
	s.booth = &facilities.Facility{
		Name:                "Exhibition Booth",
		Size:                "2m x 2m",
		Type:                "booth",
		Description:         "Indoor booth with backdrop panel",
		Usage:               "Exhibitions and club recruitment",
		BaseStudentPrice:    0,
		BaseNonStudentPrice: 15.00,
		Status:              facilities.FacilityStatusActive,
	}

	for _, facility := range []*facilities.Facility{s.stallLot, s.tent, s.booth} {
		if err := s.db.PostgreSQL.Create(facility).Error; err != nil {
			return fmt.Errorf("failed to seed facility %s: %w", facility.Name, err)
		}
	}
	fmt.Printf("  seeded %d facilities\n", 3)
	return nil
}

func (s *Seeder) seedEvents() error {
	today := time.Now().Truncate(24 * time.Hour)

	s.bazaar = &events.Event{
		Name:              "Spring Charity Bazaar",
		Venue:             "Dataran MPP",
		StartDate:         today.AddDate(0, 0, 14),
		EndDate:           today.AddDate(0, 0, 16),
		StartTime:         "09:00",
		EndTime:           "18:00",
		Type:              "bazaar",
		Description:       "Three day charity bazaar in front of the student union building",
		ApplicationStatus: events.ApplicationsOpen,
		Status:            events.StatusUpcoming,
	}
	s.expo = &events.Event{
		Name:              "Entrepreneurship Expo",
		Venue:             "Dewan Besar",
		StartDate:         today.AddDate(0, 1, 0),
		EndDate:           today.AddDate(0, 1, 2),
		StartTime:         "10:00",
		EndTime:           "17:00",
		Type:              "expo",
		Description:       "Annual student entrepreneurship exhibition",
		ApplicationStatus: events.ApplicationsOpen,
		Status:            events.StatusUpcoming,
	}

	for _, event := range []*events.Event{s.bazaar, s.expo} {
		if err := s.db.PostgreSQL.Create(event).Error; err != nil {
			return fmt.Errorf("failed to seed event %s: %w", event.Name, err)
		}
	}

	assignments := []*facilities.EventFacility{
		{
			EventID:           s.bazaar.ID,
			FacilityID:        s.stallLot.ID,
			AvailableQuantity: 20,
			StudentPrice:      20.00,
			NonStudentPrice:   35.00,
			MaxPerBusiness:    3,
		},
		{
			EventID:           s.bazaar.ID,
			FacilityID:        s.tent.ID,
			AvailableQuantity: 5,
			StudentPrice:      50.00,
			NonStudentPrice:   80.00,
			MaxPerBusiness:    1,
		},
		{
			EventID:           s.expo.ID,
			FacilityID:        s.booth.ID,
			AvailableQuantity: 30,
			StudentPrice:      0,
			NonStudentPrice:   15.00,
			MaxPerBusiness:    2,
		},
	}
	for _, assignment := range assignments {
		if err := s.db.PostgreSQL.Create(assignment).Error; err != nil {
			return fmt.Errorf("failed to seed event facility: %w", err)
		}
	}

	fmt.Printf("  seeded %d events with %d facility assignments\n", 2, len(assignments))
	return nil
}

func (s *Seeder) seedApplications() error {
	var bazaarStall facilities.EventFacility
	err := s.db.PostgreSQL.
		Where("event_id = ? AND facility_id = ?", s.bazaar.ID, s.stallLot.ID).
		First(&bazaarStall).Error
	if err != nil {
		return fmt.Errorf("failed to look up bazaar stall assignment: %w", err)
	}

	apps := []*applications.FacilityApplication{
		{
			BusinessID:      s.studentBusiness.ID,
			EventFacilityID: bazaarStall.ID,
			Quantity:        2,
			Status:          applications.StatusPending,
		},
		{
			BusinessID:      s.foodTruck.ID,
			EventFacilityID: bazaarStall.ID,
			Quantity:        3,
			Status:          applications.StatusPending,
		},
	}
	for _, app := range apps {
		if err := s.db.PostgreSQL.Create(app).Error; err != nil {
			return fmt.Errorf("failed to seed application: %w", err)
		}
	}

	fmt.Printf("  seeded %d pending applications\n", len(apps))
	return nil
}
