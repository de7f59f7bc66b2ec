package models

// Specialization is static reference data describing a medical discipline.
type Specialization struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;size:100" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100" json:"category"`
}

// TableName specifies the table name for Specialization model
func (Specialization) TableName() string {
	return "specializations"
}
