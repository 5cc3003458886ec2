package api

import (
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/endpoint"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// Dependencies are the data access collaborators of every resource module.
type Dependencies struct {
	Institutes        store.Repository[domain.Institute]
	Courses           store.Repository[domain.Course]
	Professors        store.Repository[domain.Professor]
	Rooms             store.Repository[domain.Room]
	Programs          store.Repository[domain.Program]
	Catalogs          store.Repository[domain.Catalog]
	Specializations   store.Repository[domain.Specialization]
	Curricula         store.Repository[domain.Curriculum]
	CurriculumCourses store.Repository[domain.CurriculumCourse]
	Students          store.Repository[domain.Student]
	CourseOfferings   store.Repository[domain.CourseOffering]
	Classes           store.Repository[domain.Class]
	ClassProfessors   store.Repository[domain.ClassProfessor]
	ClassSchedules    store.Repository[domain.ClassSchedule]
	Transactor        store.Transactor
}

// Modules builds every resource module in mount order.
func Modules(d Dependencies) []endpoint.Module {
	return []endpoint.Module{
		NewInstituteHandler(d.Institutes, d.Courses).Module(),
		NewCourseHandler(d.Courses, d.Institutes).Module(),
		NewProfessorHandler(d.Professors, d.Institutes).Module(),
		NewRoomHandler(d.Rooms).Module(),
		NewProgramHandler(d.Programs).Module(),
		NewCatalogHandler(d.Catalogs).Module(),
		NewSpecializationHandler(d.Specializations, d.Programs, d.Catalogs).Module(),
		NewCurriculumHandler(d.Curricula, d.CurriculumCourses, d.Programs, d.Catalogs,
			d.Specializations, d.Courses, d.Transactor).Module(),
		NewStudentHandler(d.Students, d.Programs, d.Catalogs, d.Specializations).Module(),
		NewCourseOfferingHandler(d.CourseOfferings, d.Courses).Module(),
		NewClassHandler(d.Classes, d.ClassProfessors, d.CourseOfferings, d.Professors,
			d.ClassSchedules, d.Transactor).Module(),
		NewClassScheduleHandler(d.ClassSchedules, d.Classes, d.Rooms, d.Transactor).Module(),
	}
}
