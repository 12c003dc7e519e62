package services

import (
	"errors"
	"regexp"
	"testing"

	"journal-review-api/models"
)

func TestNotifyManyDeduplicatesRecipients(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewNotificationService(gormDB)
	err := service.NotifyMany([]uint{7, 0, 7, 9, 9}, "Revised manuscript uploaded",
		"A revised version has been uploaded.", models.NotificationTypeInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	steps := []*queryStep{
		{
			// Someone else's notification id matches zero rows.
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `notifications` SET .* WHERE id = \\? AND user_id = \\?"),
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewNotificationService(gormDB)
	err := service.MarkRead(33, 7)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestDeleteScopedToRecipient(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `notifications` WHERE id = \\? AND user_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewNotificationService(gormDB)
	if err := service.Delete(33, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
