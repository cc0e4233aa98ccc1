package model

// DashboardQuery is the view state of the roster page: the search box and
// the categorical filters. Empty values mean "no filter".
type DashboardQuery struct {
	Query      string `form:"q" json:"q" binding:"max=100"`
	Department string `form:"department" json:"department" binding:"max=100"`
	Year       string `form:"year" json:"year" binding:"max=100"`
}

// StudentTab selects the detail section of the student page.
type StudentTab string

const (
	TabOverview       StudentTab = "overview"
	TabAttendance     StudentTab = "attendance"
	TabExams          StudentTab = "exams"
	TabProjects       StudentTab = "projects"
	TabCertifications StudentTab = "certifications"
)

// StudentViewQuery is the view state of the student page.
type StudentViewQuery struct {
	Tab StudentTab `form:"tab" binding:"omitempty,oneof=overview attendance exams projects certifications"`
}
