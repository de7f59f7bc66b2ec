package service

import (
	"fmt"
	"testing"
	"time"

	"clinic-appointment-backend/internal/database"
	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
	"clinic-appointment-backend/pkg/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	utils.InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
}

// testEnv wires real repositories and services over an in-memory SQLite
// database, so the partial unique slot index and gorm behavior are
// exercised for real.
type testEnv struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	doctorRepo   *repository.DoctorRepository
	apptRepo     *repository.AppointmentRepository
	scheduleRepo *repository.ScheduleRepository
	recordRepo   *repository.MedicalRecordRepository
	reviewRepo   *repository.ReviewRepository
	auditRepo    *repository.AuditRepository

	auth         *AuthService
	booking      *BookingService
	appointments *AppointmentService
	schedules    *ScheduleService
	reviews      *ReviewService
	records      *MedicalRecordService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	// Each :memory: connection is its own database; keep a single one.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	env := &testEnv{
		db:           db,
		userRepo:     repository.NewUserRepo(db),
		doctorRepo:   repository.NewDoctorRepo(db),
		apptRepo:     repository.NewAppointmentRepo(db),
		scheduleRepo: repository.NewScheduleRepo(db),
		recordRepo:   repository.NewMedicalRecordRepo(db),
		reviewRepo:   repository.NewReviewRepo(db),
		auditRepo:    repository.NewAuditRepo(db),
	}
	env.auth = NewAuthService(env.userRepo, env.recordRepo, env.auditRepo)
	env.booking = NewBookingService(env.apptRepo, env.userRepo, env.doctorRepo, env.scheduleRepo, env.auditRepo)
	env.appointments = NewAppointmentService(env.apptRepo, env.doctorRepo, env.auditRepo)
	env.schedules = NewScheduleService(env.scheduleRepo, env.doctorRepo, env.auditRepo)
	env.reviews = NewReviewService(env.reviewRepo, env.apptRepo, env.doctorRepo, env.auditRepo)
	env.records = NewMedicalRecordService(env.recordRepo)
	return env
}

func (e *testEnv) createUser(t *testing.T, email string, role models.Role, active bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		FirstName:    "Test",
		LastName:     "User",
		Active:       active,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func (e *testEnv) createDoctor(t *testing.T, email string, status models.DoctorStatus) *models.Doctor {
	t.Helper()
	user := e.createUser(t, email, models.RoleDoctor, true)
	spec := &models.Specialization{Name: fmt.Sprintf("Spec for %s", email), Category: "General"}
	if err := e.db.Create(spec).Error; err != nil {
		t.Fatalf("failed to create specialization: %v", err)
	}
	doctor := &models.Doctor{
		UserID:           user.ID,
		SpecializationID: spec.ID,
		License:          "L-1",
		Status:           status,
	}
	if err := e.db.Create(doctor).Error; err != nil {
		t.Fatalf("failed to create doctor: %v", err)
	}
	return doctor
}

func (e *testEnv) createAppointment(t *testing.T, patientID, doctorID uint, date time.Time, timeOfDay string, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	appointment := &models.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      models.DateOnly(date),
		TimeOfDay: timeOfDay,
		Status:    status,
		Symptoms:  "test symptoms",
	}
	if err := e.db.Create(appointment).Error; err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}
	return appointment
}

// date helpers pinned around a fixed clock so tests are deterministic
var testNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC) // a Sunday

func fixedClock() time.Time { return testNow }

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
