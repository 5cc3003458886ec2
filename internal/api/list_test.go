package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/pagination"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/testdb"
)

func strPtr(s string) *string { return &s }

func TestListPagination(t *testing.T) {
	a := newTestAPI(t)
	for i := 1; i <= 5; i++ {
		testdb.Insert(t, a.db, &domain.Room{Code: fmt.Sprintf("CB%02d", i), Building: "CB", Capacity: 10 * i})
	}

	tests := []struct {
		name      string
		target    string
		wantCodes []string
		wantLinks pagination.PageLinks
	}{
		{
			name:      "first page",
			target:    "/rooms?pageSize=2",
			wantCodes: []string{"CB01", "CB02"},
			wantLinks: pagination.PageLinks{
				First: "/rooms?page=1&pageSize=2",
				Last:  "/rooms?page=3&pageSize=2",
				Next:  strPtr("/rooms?page=2&pageSize=2"),
			},
		},
		{
			name:      "middle page",
			target:    "/rooms?page=2&pageSize=2",
			wantCodes: []string{"CB03", "CB04"},
			wantLinks: pagination.PageLinks{
				First: "/rooms?page=1&pageSize=2",
				Last:  "/rooms?page=3&pageSize=2",
				Next:  strPtr("/rooms?page=3&pageSize=2"),
				Prev:  strPtr("/rooms?page=1&pageSize=2"),
			},
		},
		{
			name:      "last page",
			target:    "/rooms?page=3&pageSize=2",
			wantCodes: []string{"CB05"},
			wantLinks: pagination.PageLinks{
				First: "/rooms?page=1&pageSize=2",
				Last:  "/rooms?page=3&pageSize=2",
				Prev:  strPtr("/rooms?page=2&pageSize=2"),
			},
		},
		{
			name:      "past the end",
			target:    "/rooms?page=9&pageSize=2",
			wantCodes: []string{},
			wantLinks: pagination.PageLinks{
				First: "/rooms?page=1&pageSize=2",
				Last:  "/rooms?page=3&pageSize=2",
				Prev:  strPtr("/rooms?page=8&pageSize=2"),
			},
		},
		{
			name:      "filters are kept in links",
			target:    "/rooms?minCapacity=30&pageSize=2",
			wantCodes: []string{"CB03", "CB04"},
			wantLinks: pagination.PageLinks{
				First: "/rooms?minCapacity=30&page=1&pageSize=2",
				Last:  "/rooms?minCapacity=30&page=2&pageSize=2",
				Next:  strPtr("/rooms?minCapacity=30&page=2&pageSize=2"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			page := decode[pagination.Envelope[domain.Room]](t, w)

			codes := make([]string, 0, len(page.Results))
			for _, r := range page.Results {
				codes = append(codes, r.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
			assert.Equal(t, len(tt.wantCodes), page.Count)
			assert.Equal(t, tt.wantLinks, page.Links)
		})
	}
}

func TestListEmptyCollection(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodGet, "/programs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"results": [],
		"count": 0,
		"total": 0,
		"_links": {"first": "/programs?page=1&pageSize=20", "last": "/programs?page=1&pageSize=20"}
	}`, w.Body.String())
}

func TestListLastAllowedPage(t *testing.T) {
	a := newTestAPI(t)
	seed(t, a)

	w := a.do(t, http.MethodGet, "/rooms?page=1000000&pageSize=100", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"results": [],
		"count": 0,
		"total": 1,
		"_links": {
			"first": "/rooms?page=1&pageSize=100",
			"last": "/rooms?page=1&pageSize=100",
			"prev": "/rooms?page=999999&pageSize=100"
		}
	}`, w.Body.String())
}

func TestListFilters(t *testing.T) {
	a := newTestAPI(t)
	f := seed(t, a)

	other := domain.Institute{Code: "IMECC", Name: "Matemática"}
	testdb.Insert(t, a.db, &other)
	testdb.Insert(t, a.db,
		&domain.Course{Code: "MA111", Name: "Cálculo I", Credits: 6, InstituteID: other.ID},
		&domain.CourseOffering{CourseID: f.course.ID, Year: 2024, Term: domain.TermSecond},
		&domain.CourseOffering{CourseID: f.course.ID, Year: 2025, Term: domain.TermFirst},
	)

	tests := []struct {
		target string
		total  int64
	}{
		{target: "/courses", total: 2},
		{target: fmt.Sprintf("/courses?instituteId=%d", other.ID), total: 1},
		{target: fmt.Sprintf("/professors?instituteId=%d", other.ID), total: 0},
		{target: "/course-offerings?year=2024", total: 2},
		{target: "/course-offerings?term=FIRST", total: 2},
		{target: "/course-offerings?year=2024&term=SECOND", total: 1},
		{target: "/rooms?building=CB", total: 1},
		{target: "/rooms?building=PB", total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := a.do(t, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			page := decode[pagination.Envelope[map[string]any]](t, w)
			assert.Equal(t, tt.total, page.Total)
		})
	}
}

func TestCatalogsNewestFirst(t *testing.T) {
	a := newTestAPI(t)
	testdb.Insert(t, a.db, &domain.Catalog{Year: 2018}, &domain.Catalog{Year: 2024}, &domain.Catalog{Year: 2021})

	w := a.do(t, http.MethodGet, "/catalogs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[pagination.Envelope[domain.Catalog]](t, w)
	require.Len(t, page.Results, 3)
	assert.Equal(t, []int{2024, 2021, 2018},
		[]int{page.Results[0].Year, page.Results[1].Year, page.Results[2].Year})
}

func TestInstituteCourses(t *testing.T) {
	a := newTestAPI(t)
	f := seed(t, a)

	w := a.do(t, http.MethodGet, fmt.Sprintf("/institutes/%d/courses", f.institute.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[pagination.Envelope[domain.Course]](t, w)
	require.Len(t, page.Results, 1)
	assert.Equal(t, f.course, page.Results[0])
	assert.Equal(t, fmt.Sprintf("/institutes/%d/courses?page=1&pageSize=20", f.institute.ID), page.Links.First)

	w = a.do(t, http.MethodGet, "/institutes/999/courses", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
