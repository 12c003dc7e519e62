package services

import (
	"errors"
	"regexp"
	"testing"

	sqlmysql "github.com/go-sql-driver/mysql"
)

func TestAssignReviewerIdempotentOnDuplicate(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `review_assignments`"),
			err:     &sqlmysql.MySQLError{Number: 1062, Message: "Duplicate entry '12-5' for key 'idx_paper_reviewer'"},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `papers` SET `status`=\\? WHERE id = \\? AND status IN"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewAssignmentService(gormDB)
	warnings, err := service.AssignReviewer(12, 5)
	if err != nil {
		t.Fatalf("duplicate assignment must succeed, got %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAssignReviewerDoesNotResurrectDecidedPaper(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `review_assignments`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			// The guarded update only matches submitted or under_review, so a
			// rejected paper stays rejected.
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `papers` SET `status`=\\? WHERE id = \\? AND status IN"),
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewAssignmentService(gormDB)
	warnings, err := service.AssignReviewer(9, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAssignReviewerInsertFailureIsFatal(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `review_assignments`"),
			err:     errors.New("connection reset"),
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewAssignmentService(gormDB)
	_, err := service.AssignReviewer(12, 5)

	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected DependencyError, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAssignReviewerStatusFailureBecomesWarning(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `review_assignments`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `papers` SET `status`=\\? WHERE id = \\? AND status IN"),
			err:     errors.New("lock wait timeout"),
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewAssignmentService(gormDB)
	warnings, err := service.AssignReviewer(12, 5)
	if err != nil {
		t.Fatalf("assignment should survive a failed status advance, got %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
