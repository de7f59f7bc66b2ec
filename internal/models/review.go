package models

import "time"

// Review represents the reviews table. At most one review per appointment;
// reviews are hidden until an admin approves them.
type Review struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	AppointmentID uint         `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Rating        int          `gorm:"not null" json:"rating"`
	Comment       string       `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time    `json:"created_at"`
	Approved      bool         `gorm:"default:false" json:"approved"`
	Appointment   *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

// TableName specifies the table name for Review model
func (Review) TableName() string {
	return "reviews"
}
