package approvals

import (
	"context"
	"strings"
	"testing"
	"time"

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
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               recorder,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestLockEventFacilityTakesRowLock(t *testing.T) {
	recorder := &sqlRecorder{}
	repo := NewRepository(dryRunDB(t, recorder))

	repo.LockEventFacility(context.Background(), uuid.New())

	var locked bool
	for _, stmt := range recorder.statements {
		if strings.Contains(stmt, "event_facilities") && strings.Contains(stmt, "FOR UPDATE") {
			locked = true
		}
	}
	if !locked {
		t.Fatalf("expected SELECT ... FOR UPDATE on event_facilities, got %v", recorder.statements)
	}
}
