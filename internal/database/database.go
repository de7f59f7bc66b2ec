package database

import (
	"log"
	"time"

	"clinic-appointment-backend/internal/config"
	"clinic-appointment-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the SQLite database file and runs migrations and seeding.
func Connect(cfg *config.Config) *gorm.DB {
	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.GinMode == "release" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// SQLite allows a single writer; a small pool keeps readers cheap
	// without write contention.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := Seed(db); err != nil {
		log.Printf("Warning: failed to seed database: %v", err)
	}

	log.Println("Successfully connected to database")

	return db
}

// Migrate creates the schema and the slot uniqueness index. Exposed
// separately so tests can run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Specialization{},
		&models.Doctor{},
		&models.MedicalRecord{},
		&models.Appointment{},
		&models.ScheduleSlot{},
		&models.Review{},
		&models.AuditLog{},
	)
	if err != nil {
		return err
	}

	// At most one non-cancelled appointment per (doctor, date, time).
	// Enforced in the storage engine so a concurrent check-then-book race
	// cannot double-book a slot.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
		ON appointments(doctor_id, date, time_of_day)
		WHERE status != 'cancelled'`).Error
}
