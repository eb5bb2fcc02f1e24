package catalog

import (
	"time"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
)

// DefaultPageSize is the number of courses per catalog page.
const DefaultPageSize = 12

var validSorts = map[string]bool{
	"date_asc":   true,
	"date_desc":  true,
	"price_asc":  true,
	"price_desc": true,
}

var validLevels = map[string]bool{
	models.COURSE_LEVEL_BEGINNER:     true,
	models.COURSE_LEVEL_INTERMEDIATE: true,
	models.COURSE_LEVEL_ADVANCED:     true,
	models.COURSE_LEVEL_ALL:          true,
}

// Query is the raw, untrusted course-catalog query from the URL.
type Query struct {
	Level    string
	Location string
	Month    string // "2026-09"
	Sort     string
	Page     int
}

// Page is one rendered catalog page plus its pagination metadata.
type Page struct {
	Courses    []models.Course
	Total      int64
	PageNumber int
	PageCount  int
	Query      Query
}

// Normalize drops invalid filter values and clamps the page number. The
// zero Query is valid and means "everything, soonest first, page one".
func (q Query) Normalize() Query {
	if !validLevels[q.Level] {
		q.Level = ""
	}
	if !validSorts[q.Sort] {
		q.Sort = "date_asc"
	}
	if _, err := time.Parse("2006-01", q.Month); err != nil {
		q.Month = ""
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Filter converts a normalized query into the repository filter.
func (q Query) Filter(pageSize int) repository.CourseFilter {
	f := repository.CourseFilter{
		Level:    q.Level,
		Location: q.Location,
		Sort:     q.Sort,
		Offset:   (q.Page - 1) * pageSize,
		Limit:    pageSize,
	}
	if q.Month != "" {
		if start, err := time.Parse("2006-01", q.Month); err == nil {
			end := start.AddDate(0, 1, 0)
			f.StartAfter = &start
			f.StartUntil = &end
		}
	}
	return f
}

// Browse runs a catalog query against the course repository.
func Browse(repo repository.CourseRepository, q Query) (*Page, error) {
	q = q.Normalize()

	courses, total, err := repo.ListActive(q.Filter(DefaultPageSize))
	if err != nil {
		return nil, err
	}

	pageCount := int((total + DefaultPageSize - 1) / DefaultPageSize)
	if pageCount < 1 {
		pageCount = 1
	}

	return &Page{
		Courses:    courses,
		Total:      total,
		PageNumber: q.Page,
		PageCount:  pageCount,
		Query:      q,
	}, nil
}
