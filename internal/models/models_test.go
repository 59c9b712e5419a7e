package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartsAfter(t *testing.T) {
	now := time.Date(2024, 11, 15, 12, 0, 0, 0, time.UTC)

	future, ok := Session{StartTime: "2024-11-20T10:00:00Z"}.StartsAfter(now)
	assert.True(t, ok)
	assert.True(t, future)

	past, ok := Session{StartTime: "2024-11-10T10:00:00Z"}.StartsAfter(now)
	assert.True(t, ok)
	assert.False(t, past)

	_, ok = Session{StartTime: "next tuesday"}.StartsAfter(now)
	assert.False(t, ok)

	_, ok = Session{}.StartsAfter(now)
	assert.False(t, ok)
}

func TestNormalizeSessionFillsSentinels(t *testing.T) {
	s := NormalizeSession(Session{SessionID: "s-1"})

	require.NotNil(t, s.Tutor)
	require.NotNil(t, s.Student)
	assert.Equal(t, UnknownTutorName, s.Tutor.FullName)
	assert.Equal(t, UnknownStudentName, s.Student.FullName)
	assert.Equal(t, UnknownTopic, s.Topic)
	assert.Equal(t, SessionPending, s.Status)
}

func TestNormalizeSessionKeepsPresentFields(t *testing.T) {
	s := NormalizeSession(Session{
		SessionID: "s-1",
		Topic:     "Calculus",
		Status:    SessionScheduled,
		Tutor:     &Tutor{User: User{FullName: "Dr. Minh"}},
	})

	assert.Equal(t, "Calculus", s.Topic)
	assert.Equal(t, SessionScheduled, s.Status)
	assert.Equal(t, "Dr. Minh", s.Tutor.FullName)
	assert.Equal(t, UnknownStudentName, s.Student.FullName)
}

func TestReportCriteriaFields(t *testing.T) {
	r := Report{Criteria: `{"month":"11","year":"2024","limit":5}`}

	fields := r.CriteriaFields()
	require.NotNil(t, fields)
	assert.Equal(t, "11", fields["month"])
	assert.Equal(t, "2024", fields["year"])
	assert.Equal(t, "5", fields["limit"])
	// Parsing never rewrites the stored string.
	assert.Equal(t, `{"month":"11","year":"2024","limit":5}`, r.Criteria)
}

func TestReportCriteriaFieldsNonJSON(t *testing.T) {
	assert.Nil(t, Report{Criteria: "semester 241"}.CriteriaFields())
	assert.Nil(t, Report{}.CriteriaFields())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleCoordinator.Valid())
	assert.False(t, Role("ADMIN").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserActiveDefault(t *testing.T) {
	active := true
	inactive := false
	assert.True(t, User{}.Active())
	assert.True(t, User{IsActive: &active}.Active())
	assert.False(t, User{IsActive: &inactive}.Active())
}
