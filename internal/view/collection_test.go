package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

func sessionID(s models.Session) string { return s.SessionID }

func TestUpsertHeadPrependsNew(t *testing.T) {
	list := []models.Session{{SessionID: "s-1"}, {SessionID: "s-2"}}

	out := UpsertHead(list, models.Session{SessionID: "s-3"}, sessionID)

	assert.Len(t, out, 3)
	assert.Equal(t, "s-3", out[0].SessionID)
	assert.Equal(t, "s-1", out[1].SessionID)
	assert.Equal(t, "s-2", out[2].SessionID)
}

func TestUpsertHeadReplacesInPlace(t *testing.T) {
	list := []models.Session{
		{SessionID: "s-1", Topic: "Calculus", Status: models.SessionScheduled},
		{SessionID: "s-2", Topic: "Physics"},
	}

	out := UpsertHead(list, models.Session{SessionID: "s-1", Topic: "Calculus 2"}, sessionID)

	assert.Len(t, out, 2)
	assert.Equal(t, "s-1", out[0].SessionID)
	assert.Equal(t, "Calculus 2", out[0].Topic)
	// Replacement is whole-record: fields absent from the new record reset.
	assert.Empty(t, out[0].Status)
	assert.Equal(t, "Physics", out[1].Topic)
}

func TestUpsertHeadIdempotent(t *testing.T) {
	list := []models.Session{{SessionID: "s-1"}}
	item := models.Session{SessionID: "s-2", Topic: "Algebra"}

	once := UpsertHead(list, item, sessionID)
	twice := UpsertHead(once, item, sessionID)

	assert.Equal(t, once, twice)
	assert.Len(t, twice, 2)
}

func TestUpsertHeadDoesNotMutateInput(t *testing.T) {
	list := []models.Session{{SessionID: "s-1", Topic: "original"}}

	_ = UpsertHead(list, models.Session{SessionID: "s-1", Topic: "changed"}, sessionID)

	assert.Equal(t, "original", list[0].Topic)
}

func TestUpsertTailAppendsNew(t *testing.T) {
	list := []models.Session{{SessionID: "s-1"}}

	out := UpsertTail(list, models.Session{SessionID: "s-2"}, sessionID)

	assert.Len(t, out, 2)
	assert.Equal(t, "s-2", out[1].SessionID)
}

func TestPatchByID(t *testing.T) {
	list := []models.Session{
		{SessionID: "s-1", Status: models.SessionScheduled},
		{SessionID: "s-2", Status: models.SessionScheduled},
	}

	out := PatchByID(list, "s-2", sessionID, func(s models.Session) models.Session {
		s.Status = models.SessionCanceled
		return s
	})

	assert.Len(t, out, 2)
	assert.Equal(t, models.SessionScheduled, out[0].Status)
	assert.Equal(t, models.SessionCanceled, out[1].Status)
	// Original list untouched.
	assert.Equal(t, models.SessionScheduled, list[1].Status)
}

func TestPatchByIDMissing(t *testing.T) {
	list := []models.Session{{SessionID: "s-1"}}

	out := PatchByID(list, "nope", sessionID, func(s models.Session) models.Session {
		s.Status = models.SessionCanceled
		return s
	})

	assert.Equal(t, list, out)
}

func TestRemoveByID(t *testing.T) {
	list := []models.Session{{SessionID: "s-1"}, {SessionID: "s-2"}, {SessionID: "s-3"}}

	out := RemoveByID(list, "s-2", sessionID)

	assert.Len(t, out, 2)
	assert.Equal(t, "s-1", out[0].SessionID)
	assert.Equal(t, "s-3", out[1].SessionID)
}
