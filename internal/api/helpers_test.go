package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/endpoint"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/database"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/testdb"
)

// testAPI serves every resource module over a fresh in-memory database.
type testAPI struct {
	db     *gorm.DB
	router chi.Router
}

func newDependencies(db *gorm.DB) Dependencies {
	return Dependencies{
		Institutes:        database.NewRepository[domain.Institute](db),
		Courses:           database.NewRepository[domain.Course](db),
		Professors:        database.NewRepository[domain.Professor](db),
		Rooms:             database.NewRepository[domain.Room](db),
		Programs:          database.NewRepository[domain.Program](db),
		Catalogs:          database.NewRepository[domain.Catalog](db),
		Specializations:   database.NewRepository[domain.Specialization](db),
		Curricula:         database.NewRepository[domain.Curriculum](db),
		CurriculumCourses: database.NewRepository[domain.CurriculumCourse](db),
		Students:          database.NewRepository[domain.Student](db),
		CourseOfferings:   database.NewRepository[domain.CourseOffering](db),
		Classes:           database.NewRepository[domain.Class](db),
		ClassProfessors:   database.NewRepository[domain.ClassProfessor](db),
		ClassSchedules:    database.NewRepository[domain.ClassSchedule](db),
		Transactor:        database.NewTransactor(db),
	}
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testdb.Open(t)
	r := chi.NewRouter()
	endpoint.Mount(r, Modules(newDependencies(db))...)
	return &testAPI{db: db, router: r}
}

// do sends a request with body encoded as JSON when it is not nil.
func (a *testAPI) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// create posts body to collection, requires a 201 and decodes the result.
func create[T any](t *testing.T, a *testAPI, collection string, body any) T {
	t.Helper()
	w := a.do(t, http.MethodPost, collection, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[T](t, w)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// requireReport requires a 400 whose report holds exactly one error with
// code at path.
func requireReport(t *testing.T, w *httptest.ResponseRecorder, code contract.ErrorCode, path ...string) contract.Report {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	report := decode[contract.Report](t, w)
	require.Len(t, report.Errors, 1, w.Body.String())
	require.Equal(t, code, report.Errors[0].Code, w.Body.String())
	require.Equal(t, path, report.Errors[0].Path)
	return report
}

// fixture is a minimal academic dataset shared by the scheduling tests.
type fixture struct {
	institute domain.Institute
	course    domain.Course
	professor domain.Professor
	room      domain.Room
	program   domain.Program
	catalog   domain.Catalog
	offering  domain.CourseOffering
	class     domain.Class
}

func seed(t *testing.T, a *testAPI) fixture {
	t.Helper()
	f := fixture{
		institute: domain.Institute{Code: "IC", Name: "Instituto de Computação"},
		room:      domain.Room{Code: "CB01", Building: "CB", Capacity: 80},
		program:   domain.Program{Code: "42", Name: "Ciência da Computação"},
		catalog:   domain.Catalog{Year: 2024},
	}
	testdb.Insert(t, a.db, &f.institute, &f.room, &f.program, &f.catalog)

	f.course = domain.Course{Code: "MC102", Name: "Algoritmos e Programação", Credits: 6, InstituteID: f.institute.ID}
	f.professor = domain.Professor{Name: "Ada Lovelace", InstituteID: f.institute.ID}
	testdb.Insert(t, a.db, &f.course, &f.professor)

	f.offering = domain.CourseOffering{CourseID: f.course.ID, Year: 2024, Term: domain.TermFirst}
	testdb.Insert(t, a.db, &f.offering)

	f.class = domain.Class{Code: "A", CourseOfferingID: f.offering.ID}
	testdb.Insert(t, a.db, &f.class)
	return f
}
