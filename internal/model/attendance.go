package model

// AttendanceStatus is the outcome of one attendance mark.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

// Valid reports whether s is one of the enumerated statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// AttendanceRecord is one attendance mark for a student in a subject.
type AttendanceRecord struct {
	ID        int              `json:"id"`
	StudentID int              `json:"student_id"`
	Subject   string           `json:"subject"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
}
