package models

// DoctorStatus is the working status of a doctor profile. Only active
// doctors can take new appointments.
type DoctorStatus string

const (
	DoctorActive   DoctorStatus = "active"
	DoctorInactive DoctorStatus = "inactive"
)

// Doctor represents the doctors table. Each doctor profile belongs to
// exactly one user account and one specialization.
type Doctor struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	SpecializationID uint            `gorm:"not null;index" json:"specialization_id"`
	License          string          `gorm:"size:50" json:"license"`
	Insurance        string          `gorm:"size:100" json:"insurance"`
	Program          string          `gorm:"size:100" json:"program"`
	Rating           float64         `gorm:"default:0" json:"rating"`
	Status           DoctorStatus    `gorm:"size:20;not null;default:'active'" json:"status"`
	User             *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialization   *Specialization `gorm:"foreignKey:SpecializationID" json:"specialization,omitempty"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "doctors"
}
