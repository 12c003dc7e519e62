package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"journal-review-api/models"
)

func TestListPapersAttachesAssignedReviewers(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `papers`"),
			columns: []string{"id", "title", "status"},
			rows: [][]driver.Value{
				{int64(1), "First", models.PaperStatusUnderReview},
				{int64(2), "Second", models.PaperStatusSubmitted},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `review_assignments`"),
			columns: []string{"id", "paper_id", "reviewer_id"},
			rows: [][]driver.Value{
				{int64(10), int64(1), int64(5)},
				{int64(11), int64(1), int64(6)},
			},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewPaperService(gormDB)
	views, err := service.ListPapers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected two papers, got %d", len(views))
	}
	if len(views[0].AssignedReviewers) != 2 {
		t.Fatalf("expected two reviewers on first paper, got %v", views[0].AssignedReviewers)
	}
	if views[1].AssignedReviewers == nil || len(views[1].AssignedReviewers) != 0 {
		t.Fatalf("expected empty reviewer list, got %v", views[1].AssignedReviewers)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestListWithReviewCounts(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `papers`"),
			columns: []string{"id", "title", "status"},
			rows: [][]driver.Value{
				{int64(1), "First", models.PaperStatusUnderReview},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `review_assignments`"),
			columns: []string{"id", "paper_id", "reviewer_id"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `reviews`"),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(3)}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewPaperService(gormDB)
	summaries, err := service.ListWithReviewCounts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}
	if summaries[0].CompletedReviews != 3 {
		t.Fatalf("expected three completed reviews, got %d", summaries[0].CompletedReviews)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGetPaperNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `papers`"),
			columns: []string{"id"},
			rows:    [][]driver.Value{},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewPaperService(gormDB)
	_, err := service.GetPaper(99)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
