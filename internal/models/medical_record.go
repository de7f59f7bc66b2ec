package models

import "time"

// MedicalRecord represents the medical_records table. One record per
// patient, created automatically at registration with placeholder values.
type MedicalRecord struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	PatientID         uint      `gorm:"uniqueIndex;not null" json:"patient_id"`
	BloodType         string    `gorm:"size:20" json:"blood_type"`
	Allergies         string    `gorm:"type:text" json:"allergies"`
	ChronicConditions string    `gorm:"type:text" json:"chronic_conditions"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Patient           *User     `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

// TableName specifies the table name for MedicalRecord model
func (MedicalRecord) TableName() string {
	return "medical_records"
}
