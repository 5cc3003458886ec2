package domain

// Institute is an academic unit that offers courses and employs professors.
type Institute struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// TableName implements gorm's tabler.
func (Institute) TableName() string { return "institutes" }

// Course is a subject taught by an institute.
type Course struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	InstituteID int64  `json:"instituteId"`
}

// TableName implements gorm's tabler.
func (Course) TableName() string { return "courses" }

// Professor teaches classes and belongs to an institute.
type Professor struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	InstituteID int64  `json:"instituteId"`
}

// TableName implements gorm's tabler.
func (Professor) TableName() string { return "professors" }

// Room is a physical space where classes meet.
type Room struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Code     string `json:"code"`
	Building string `json:"building"`
	Capacity int    `json:"capacity"`
}

// TableName implements gorm's tabler.
func (Room) TableName() string { return "rooms" }

// Program is a degree program students enrol in.
type Program struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// TableName implements gorm's tabler.
func (Program) TableName() string { return "programs" }

// Catalog is the yearly edition of the program rules.
type Catalog struct {
	ID   int64 `json:"id" gorm:"primaryKey"`
	Year int   `json:"year"`
}

// TableName implements gorm's tabler.
func (Catalog) TableName() string { return "catalogs" }

// Specialization is an optional track of a program in a catalog.
type Specialization struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	ProgramID int64  `json:"programId"`
	CatalogID int64  `json:"catalogId"`
}

// TableName implements gorm's tabler.
func (Specialization) TableName() string { return "specializations" }

// Student is enrolled in a program under a catalog.
type Student struct {
	ID               int64  `json:"id" gorm:"primaryKey"`
	RA               string `json:"ra" gorm:"column:ra"`
	Name             string `json:"name"`
	ProgramID        int64  `json:"programId"`
	CatalogID        int64  `json:"catalogId"`
	SpecializationID *int64 `json:"specializationId"`
}

// TableName implements gorm's tabler.
func (Student) TableName() string { return "students" }
