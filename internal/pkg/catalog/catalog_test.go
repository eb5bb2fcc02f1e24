package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
)

type fakeCourseRepo struct {
	repository.CourseRepository

	lastFilter repository.CourseFilter
	courses    []models.Course
	total      int64
}

func (f *fakeCourseRepo) ListActive(filter repository.CourseFilter) ([]models.Course, int64, error) {
	f.lastFilter = filter
	return f.courses, f.total, nil
}

func TestNormalizeDropsInvalidValues(t *testing.T) {
	q := Query{Level: "wizard", Sort: "name_desc", Month: "septemberish", Page: -3}.Normalize()

	assert.Empty(t, q.Level, "invalid level should be dropped")
	assert.Equal(t, "date_asc", q.Sort, "invalid sort should default to date_asc")
	assert.Empty(t, q.Month, "invalid month should be dropped")
	assert.Equal(t, 1, q.Page, "page should clamp to 1")
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	q := Query{Level: models.COURSE_LEVEL_BEGINNER, Sort: "price_desc", Month: "2026-09", Page: 3}.Normalize()

	assert.Equal(t, models.COURSE_LEVEL_BEGINNER, q.Level)
	assert.Equal(t, "price_desc", q.Sort)
	assert.Equal(t, "2026-09", q.Month)
	assert.Equal(t, 3, q.Page)
}

func TestFilterMonthWindow(t *testing.T) {
	q := Query{Month: "2026-09", Page: 1}.Normalize()
	f := q.Filter(DefaultPageSize)

	require.NotNil(t, f.StartAfter, "month filter should set a start window")
	require.NotNil(t, f.StartUntil, "month filter should set a start window")
	wantStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, f.StartAfter.Equal(wantStart), "window start = %v, want %v", f.StartAfter, wantStart)
	assert.True(t, f.StartUntil.Equal(wantStart.AddDate(0, 1, 0)), "window end should be one month after start")
}

func TestBrowsePagination(t *testing.T) {
	repo := &fakeCourseRepo{total: 25}

	page, err := Browse(repo, Query{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, repo.lastFilter.Offset, "page 2 should skip one page")
	assert.Equal(t, DefaultPageSize, repo.lastFilter.Limit)
	assert.Equal(t, 3, page.PageCount, "25 courses at %d per page", DefaultPageSize)
	assert.Equal(t, 2, page.PageNumber)
}

func TestBrowseEmptyCatalog(t *testing.T) {
	repo := &fakeCourseRepo{total: 0}

	page, err := Browse(repo, Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.PageCount, "empty catalog should still report one page")
}
