package models

import "time"

// ScheduleSlot represents the schedule_slots table: a doctor's nominal
// working window for one weekday, with an optional break. Times are
// "HH:MM" strings; empty break fields mean no break.
type ScheduleSlot struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	DoctorID   uint         `gorm:"not null;index" json:"doctor_id"`
	Weekday    time.Weekday `gorm:"not null" json:"weekday"`
	StartTime  string       `gorm:"size:5;not null" json:"start_time"`
	EndTime    string       `gorm:"size:5;not null" json:"end_time"`
	BreakStart string       `gorm:"size:5" json:"break_start"`
	BreakEnd   string       `gorm:"size:5" json:"break_end"`
	Active     bool         `gorm:"default:true" json:"active"`
	Doctor     *Doctor      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for ScheduleSlot model
func (ScheduleSlot) TableName() string {
	return "schedule_slots"
}

// Covers reports whether the "HH:MM" time falls inside the working window
// and outside the break. The end of the window is exclusive.
func (s *ScheduleSlot) Covers(timeOfDay string) bool {
	if timeOfDay < s.StartTime || timeOfDay >= s.EndTime {
		return false
	}
	if s.BreakStart != "" && s.BreakEnd != "" &&
		timeOfDay >= s.BreakStart && timeOfDay < s.BreakEnd {
		return false
	}
	return true
}
