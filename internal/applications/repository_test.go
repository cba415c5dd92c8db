package applications

import (
	"context"
	"strings"
	"testing"
	"time"

	"rently/internal/businesses"
	"rently/internal/facilities"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlRecorder captures every statement gorm builds so tests can assert
// on the generated SQL without a live database.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func dryRunDB(t *testing.T, recorder *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=rently dbname=rently",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 recorder,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestCreateBatchInsertsApplicationsOnly(t *testing.T) {
	recorder := &sqlRecorder{}
	repo := NewRepository(dryRunDB(t, recorder))

	// Submission builds applications with the loaded business and
	// assignment attached for response building. Persisting them must
	// not touch those tables.
	apps := []*FacilityApplication{
		{
			BusinessID:      uuid.New(),
			Business:        businesses.Business{ID: uuid.New(), Name: "Aina's Handmade Crafts"},
			EventFacilityID: uuid.New(),
			EventFacility:   facilities.EventFacility{ID: uuid.New(), AvailableQuantity: 10},
			Quantity:        2,
			Status:          StatusPending,
		},
	}

	if err := repo.CreateBatch(context.Background(), apps); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	var inserts []string
	for _, stmt := range recorder.statements {
		if strings.Contains(stmt, "INSERT") {
			inserts = append(inserts, stmt)
		}
	}
	if len(inserts) != 1 {
		t.Fatalf("expected a single INSERT, got %v", inserts)
	}
	if !strings.Contains(inserts[0], "facility_applications") {
		t.Fatalf("expected INSERT INTO facility_applications, got %q", inserts[0])
	}
	for _, table := range []string{"businesses", "event_facilities", "users"} {
		if strings.Contains(inserts[0], `"`+table+`"`) {
			t.Fatalf("INSERT touches %s: %q", table, inserts[0])
		}
	}
}
