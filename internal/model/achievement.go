package model

// ProjectRecord is a project a student worked on. Grade fields are nil when
// the project has not been graded.
type ProjectRecord struct {
	ID          int      `json:"id"`
	StudentID   int      `json:"student_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StartDate   string   `json:"start_date"`
	EndDate     *string  `json:"end_date,omitempty"`
	Grade       *float64 `json:"grade,omitempty"`
	MaxGrade    *float64 `json:"max_grade,omitempty"`
	Subject     string   `json:"subject,omitempty"`
}

// Graded reports whether the project carries a usable grade.
func (p ProjectRecord) Graded() bool {
	return p.Grade != nil && p.MaxGrade != nil && *p.MaxGrade > 0
}

// CertificationRecord is a professional certification held by a student.
type CertificationRecord struct {
	ID                  int     `json:"id"`
	StudentID           int     `json:"student_id"`
	Name                string  `json:"name"`
	IssuingOrganization string  `json:"issuing_organization"`
	IssueDate           string  `json:"issue_date"`
	ExpiryDate          *string `json:"expiry_date,omitempty"`
	CredentialID        string  `json:"credential_id,omitempty"`
}

// PerformanceBundle is everything the performance API knows about one student.
type PerformanceBundle struct {
	Student            Student               `json:"student"`
	Attendance         []AttendanceRecord    `json:"attendance"`
	Exams              []ExamRecord          `json:"exams"`
	Certifications     []CertificationRecord `json:"certifications"`
	Projects           []ProjectRecord       `json:"projects"`
	PerformanceMetrics []PerformanceMetric   `json:"performance_metrics"`
}
