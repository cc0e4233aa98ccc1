package analytics

import "github.com/stemsi/perfdash/internal/model"

// DepartmentStat compares one department against the others.
type DepartmentStat struct {
	Department          string  `json:"department"`
	TotalStudents       int     `json:"total_students"`
	AvgAttendance       float64 `json:"avg_attendance"`
	AvgExamScore        float64 `json:"avg_exam_score"`
	TotalCertifications int     `json:"total_certifications"`
	AvgCertifications   float64 `json:"avg_certifications"`
	TotalProjects       int     `json:"total_projects"`
	AvgProjects         float64 `json:"avg_projects"`
}

// DepartmentComparison rolls students up by department. bundles is keyed by
// student ID; a student without a bundle contributes zeros.
func DepartmentComparison(students []model.Student, bundles map[int]*model.PerformanceBundle) []DepartmentStat {
	groups := GroupBy(students, func(s model.Student) string { return s.Department })

	stats := make([]DepartmentStat, 0, len(groups))
	for _, g := range groups {
		st := DepartmentStat{Department: g.Key, TotalStudents: len(g.Members)}

		var attendance, exams float64
		for _, s := range g.Members {
			b := bundles[s.ID]
			if b == nil {
				continue
			}
			attendance += AttendancePercentage(b.Attendance)
			exams += AverageExamScore(b.Exams)
			st.TotalCertifications += len(b.Certifications)
			st.TotalProjects += len(b.Projects)
		}

		n := float64(st.TotalStudents)
		st.AvgAttendance = Round1(attendance / n)
		st.AvgExamScore = Round1(exams / n)
		st.AvgCertifications = Round1(float64(st.TotalCertifications) / n)
		st.AvgProjects = Round1(float64(st.TotalProjects) / n)

		stats = append(stats, st)
	}
	return stats
}
