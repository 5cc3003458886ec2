package domain

// Curriculum lists the courses of a program, catalog and optional
// specialization. Courses are stored as CurriculumCourse rows owned by the
// curriculum.
type Curriculum struct {
	ID               int64              `json:"id" gorm:"primaryKey"`
	ProgramID        int64              `json:"programId"`
	CatalogID        int64              `json:"catalogId"`
	SpecializationID *int64             `json:"specializationId"`
	Courses          []CurriculumCourse `json:"courses" gorm:"-"`
}

// TableName implements gorm's tabler.
func (Curriculum) TableName() string { return "curricula" }

// CurriculumCourse places a course in a suggested semester of a curriculum.
type CurriculumCourse struct {
	ID           int64 `json:"-" gorm:"primaryKey"`
	CurriculumID int64 `json:"-"`
	CourseID     int64 `json:"courseId"`
	Semester     int   `json:"semester"`
}

// TableName implements gorm's tabler.
func (CurriculumCourse) TableName() string { return "curriculum_courses" }
