package database

import (
	"log"
	"time"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/pkg/utils"

	"gorm.io/gorm"
)

// Seed populates an empty database with synthetic development data:
// reference specializations, one account per role, a doctor profile with a
// weekly schedule and a sample appointment. It is a no-op once any user
// exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding database with synthetic data")

	specializations := []models.Specialization{
		{Name: "General Practitioner", Description: "Primary care physician", Category: "General medicine"},
		{Name: "Surgeon", Description: "Operations and surgical interventions", Category: "Surgery"},
		{Name: "Cardiologist", Description: "Treatment of heart conditions", Category: "Cardiology"},
		{Name: "Neurologist", Description: "Treatment of the nervous system", Category: "Neurology"},
	}
	if err := db.Create(&specializations).Error; err != nil {
		return err
	}

	users := make([]models.User, 0, 3)
	for _, u := range []struct {
		email, password          string
		role                     models.Role
		firstName, lastName, tel string
	}{
		{"admin@clinic.local", "admin123", models.RoleAdmin, "Alice", "Adams", "+1 (000) 000-00-00"},
		{"doctor@clinic.local", "doctor1", models.RoleDoctor, "David", "Drew", "+1 (111) 111-11-11"},
		{"patient@clinic.local", "patient1", models.RolePatient, "Paula", "Price", "+1 (222) 222-22-22"},
	} {
		hash, err := utils.HashPassword(u.password)
		if err != nil {
			return err
		}
		users = append(users, models.User{
			Email:        u.email,
			PasswordHash: hash,
			Role:         u.role,
			FirstName:    u.firstName,
			LastName:     u.lastName,
			Phone:        u.tel,
			Active:       true,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	doctor := models.Doctor{
		UserID:           users[1].ID,
		SpecializationID: specializations[0].ID,
		License:          "L-12345",
		Insurance:        "VHI",
		Program:          "Standard",
		Rating:           4.8,
		Status:           models.DoctorActive,
	}
	if err := db.Create(&doctor).Error; err != nil {
		return err
	}

	record := models.MedicalRecord{
		PatientID:         users[2].ID,
		BloodType:         "O+",
		Allergies:         "None",
		ChronicConditions: "None",
	}
	if err := db.Create(&record).Error; err != nil {
		return err
	}

	// Weekday working hours with a lunch break.
	slots := make([]models.ScheduleSlot, 0, 5)
	for wd := time.Monday; wd <= time.Friday; wd++ {
		slots = append(slots, models.ScheduleSlot{
			DoctorID:   doctor.ID,
			Weekday:    wd,
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: "13:00",
			BreakEnd:   "14:00",
			Active:     true,
		})
	}
	if err := db.Create(&slots).Error; err != nil {
		return err
	}

	appointment := models.Appointment{
		PatientID: users[2].ID,
		DoctorID:  doctor.ID,
		Date:      models.DateOnly(time.Now().AddDate(0, 0, 1)),
		TimeOfDay: "10:00",
		Status:    models.StatusScheduled,
		Symptoms:  "Fever, cough",
	}
	return db.Create(&appointment).Error
}
