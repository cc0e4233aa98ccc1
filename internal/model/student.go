package model

// Student is a student as returned by the performance API.
type Student struct {
	ID          int    `json:"id"`
	StudentID   string `json:"student_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	YearOfStudy int    `json:"year_of_study"`
	Semester    int    `json:"semester"`
}

// FullName joins first and last name with a single space.
func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// StudentOption is a compact entry for student pickers.
type StudentOption struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}
