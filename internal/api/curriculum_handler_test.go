package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/testdb"
)

func TestCurriculumCourses(t *testing.T) {
	a := newTestAPI(t)
	f := seed(t, a)

	second := domain.Course{Code: "MC202", Name: "Estruturas de Dados", Credits: 6, InstituteID: f.institute.ID}
	testdb.Insert(t, a.db, &second)

	body := func(courses ...map[string]any) map[string]any {
		if courses == nil {
			courses = []map[string]any{}
		}
		return map[string]any{"programId": f.program.ID, "catalogId": f.catalog.ID, "courses": courses}
	}
	entry := func(courseID int64, semester int) map[string]any {
		return map[string]any{"courseId": courseID, "semester": semester}
	}

	curriculum := create[domain.Curriculum](t, a, "/curricula", body(entry(f.course.ID, 1), entry(second.ID, 2)))
	item := fmt.Sprintf("/curricula/%d", curriculum.ID)

	w := a.do(t, http.MethodGet, item, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{
		"id": %d,
		"programId": %d,
		"catalogId": %d,
		"specializationId": null,
		"courses": [{"courseId": %d, "semester": 1}, {"courseId": %d, "semester": 2}]
	}`, curriculum.ID, f.program.ID, f.catalog.ID, f.course.ID, second.ID), w.Body.String())

	t.Run("update replaces the course list", func(t *testing.T) {
		w := a.do(t, http.MethodPut, item, body(entry(second.ID, 3)))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var entries []domain.CurriculumCourse
		require.NoError(t, a.db.Where("curriculum_id = ?", curriculum.ID).Find(&entries).Error)
		require.Len(t, entries, 1)
		assert.Equal(t, second.ID, entries[0].CourseID)
		assert.Equal(t, 3, entries[0].Semester)
	})

	t.Run("listed course cannot be deleted", func(t *testing.T) {
		requireReport(t, a.do(t, http.MethodDelete, fmt.Sprintf("/courses/%d", second.ID), nil),
			contract.CodeHasDependents, "path", "id")
	})

	t.Run("duplicate course", func(t *testing.T) {
		requireReport(t, a.do(t, http.MethodPost, "/curricula", body(entry(f.course.ID, 1), entry(f.course.ID, 2))),
			contract.CodeInvalidValue, "body", "courses", "1", "courseId")
	})

	t.Run("missing course", func(t *testing.T) {
		requireReport(t, a.do(t, http.MethodPost, "/curricula", body(entry(f.course.ID, 1), entry(999, 2))),
			contract.CodeReferenceNotFound, "body", "courses", "1", "courseId")
	})

	t.Run("empty course list", func(t *testing.T) {
		requireReport(t, a.do(t, http.MethodPost, "/curricula", body()),
			contract.CodeTooSmall, "body", "courses")
	})

	t.Run("delete removes the entries", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, item, nil).Code)

		var count int64
		require.NoError(t, a.db.Model(&domain.CurriculumCourse{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}
