package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/pagination"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/testdb"
)

func TestClassProfessors(t *testing.T) {
	a := newTestAPI(t)
	f := seed(t, a)

	second := domain.Professor{Name: "Alan Turing", InstituteID: f.institute.ID}
	testdb.Insert(t, a.db, &second)

	class := create[domain.Class](t, a, "/classes", map[string]any{
		"code":             "B",
		"courseOfferingId": f.offering.ID,
		"professorIds":     []int64{second.ID, f.professor.ID},
	})
	item := fmt.Sprintf("/classes/%d", class.ID)

	w := a.do(t, http.MethodGet, item, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.Class](t, w)
	assert.ElementsMatch(t, []int64{f.professor.ID, second.ID}, got.ProfessorIDs)

	w = a.do(t, http.MethodPut, item, map[string]any{
		"code":             "B",
		"courseOfferingId": f.offering.ID,
		"professorIds":     []int64{second.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, fmt.Sprintf("/classes?courseOfferingId=%d", f.offering.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[pagination.Envelope[domain.Class]](t, w)
	require.Len(t, page.Results, 2)
	assert.Equal(t, []int64{}, page.Results[0].ProfessorIDs, "class A has no professors")
	assert.Equal(t, []int64{second.ID}, page.Results[1].ProfessorIDs)

	t.Run("professor teaching a class cannot be deleted", func(t *testing.T) {
		requireReport(t, a.do(t, http.MethodDelete, fmt.Sprintf("/professors/%d", second.ID), nil),
			contract.CodeHasDependents, "path", "id")
	})

	t.Run("deleting the class releases its professors", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, item, nil).Code)
		assert.Equal(t, http.StatusNoContent,
			a.do(t, http.MethodDelete, fmt.Sprintf("/professors/%d", second.ID), nil).Code)
	})
}

func TestClassWriteFailures(t *testing.T) {
	a := newTestAPI(t)
	f := seed(t, a)

	t.Run("missing professor", func(t *testing.T) {
		requireReport(t, a.do(t, http.MethodPost, "/classes", map[string]any{
			"code":             "C",
			"courseOfferingId": f.offering.ID,
			"professorIds":     []int64{f.professor.ID, 999},
		}), contract.CodeReferenceNotFound, "body", "professorIds", "1")
	})

	t.Run("repeated professor", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/classes", map[string]any{
			"code":             "C",
			"courseOfferingId": f.offering.ID,
			"professorIds":     []int64{f.professor.ID, f.professor.ID},
		})
		requireReport(t, w, contract.CodeInvalidValue, "body", "professorIds")
	})

	t.Run("duplicate code rolls back", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/classes", map[string]any{
			"code":             "A",
			"courseOfferingId": f.offering.ID,
			"professorIds":     []int64{f.professor.ID},
		})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		report := decode[contract.Report](t, w)
		require.Len(t, report.Errors, 2)
		assert.Equal(t, contract.CodeAlreadyExists, report.Errors[0].Code)

		var links int64
		require.NoError(t, a.db.Model(&domain.ClassProfessor{}).Count(&links).Error)
		assert.Zero(t, links)
	})
}
