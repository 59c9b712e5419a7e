package models

import "time"

// SessionMode distinguishes video calls from campus meetings.
type SessionMode string

const (
	ModeOnline   SessionMode = "ONLINE"
	ModeInPerson SessionMode = "IN_PERSON"
)

// SessionStatus is the backend-owned lifecycle state of an appointment.
type SessionStatus string

const (
	SessionPending     SessionStatus = "PENDING"
	SessionScheduled   SessionStatus = "SCHEDULED"
	SessionCompleted   SessionStatus = "COMPLETED"
	SessionCanceled    SessionStatus = "CANCELED"
	SessionRescheduled SessionStatus = "RESCHEDULED"
)

// Session is a tutoring appointment between one student and one tutor.
// Timestamps arrive as RFC3339 strings; upcoming/past is a render-time
// predicate on StartTime, never a stored field.
type Session struct {
	SessionID           string        `json:"sessionId"`
	MeetingLink         string        `json:"meetingLink,omitempty"`
	Location            string        `json:"location,omitempty"`
	Student             *Student      `json:"student,omitempty"`
	Tutor               *Tutor        `json:"tutor,omitempty"`
	Topic               string        `json:"topic,omitempty"`
	StartTime           string        `json:"startTime,omitempty"`
	EndTime             string        `json:"endTime,omitempty"`
	Duration            int           `json:"duration,omitempty"`
	Mode                SessionMode   `json:"mode,omitempty"`
	Status              SessionStatus `json:"status,omitempty"`
	EvaluationID        string        `json:"evaluationId,omitempty"`
	EvaluationSubmitted bool          `json:"evaluationSubmitted,omitempty"`
}

// StartsAfter reports whether the session starts strictly after now.
// Sessions without a parseable start time are neither upcoming nor past.
func (s Session) StartsAfter(now time.Time) (bool, bool) {
	if s.StartTime == "" {
		return false, false
	}
	start, err := time.Parse(time.RFC3339, s.StartTime)
	if err != nil {
		return false, false
	}
	return start.After(now), true
}

// RescheduleRequest carries the replacement time window for a session.
type RescheduleRequest struct {
	NewStartTime string `json:"newStartTime" validate:"required"`
	NewEndTime   string `json:"newEndTime" validate:"required"`
}

// ScheduleSessionRequest books a session against a tutor's availability.
type ScheduleSessionRequest struct {
	StudentID string      `json:"studentId" validate:"required"`
	TutorID   string      `json:"tutorId" validate:"required"`
	Topic     string      `json:"topic,omitempty"`
	StartTime string      `json:"startTime" validate:"required"`
	EndTime   string      `json:"endTime" validate:"required"`
	Mode      SessionMode `json:"mode,omitempty"`
}
