package models

// Sentinels substituted for relations the backend omitted. Presentation
// code renders these directly instead of guarding every field access.
const (
	UnknownTutorName   = "Tutor"
	UnknownStudentName = "Student"
	UnknownTopic       = "N/A"
	UnknownTime        = "TBD"
)

// NormalizeSession fills defaults and coerces missing relations to explicit
// sentinels, applied once per fetched entity.
func NormalizeSession(s Session) Session {
	if s.Tutor == nil {
		s.Tutor = &Tutor{User: User{FullName: UnknownTutorName}}
	} else if s.Tutor.FullName == "" {
		s.Tutor.FullName = UnknownTutorName
	}
	if s.Student == nil {
		s.Student = &Student{User: User{FullName: UnknownStudentName}}
	} else if s.Student.FullName == "" {
		s.Student.FullName = UnknownStudentName
	}
	if s.Topic == "" {
		s.Topic = UnknownTopic
	}
	if s.Status == "" {
		s.Status = SessionPending
	}
	return s
}

// NormalizeSessions applies NormalizeSession across a fetched collection.
func NormalizeSessions(sessions []Session) []Session {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = NormalizeSession(s)
	}
	return out
}

// NormalizeSlot defaults a slot without a status to available.
func NormalizeSlot(s AvailabilitySlot) AvailabilitySlot {
	if s.Status == "" {
		s.Status = SlotAvailable
	}
	return s
}

// NormalizeSlots applies NormalizeSlot across a fetched collection.
func NormalizeSlots(slots []AvailabilitySlot) []AvailabilitySlot {
	out := make([]AvailabilitySlot, len(slots))
	for i, s := range slots {
		out[i] = NormalizeSlot(s)
	}
	return out
}

// NormalizeMatch guarantees a pending status and non-nil tutor relation.
func NormalizeMatch(m MatchingRequest) MatchingRequest {
	if m.Status == "" {
		m.Status = MatchPending
	}
	if m.Tutor == nil {
		m.Tutor = &Tutor{User: User{FullName: UnknownTutorName}}
	}
	return m
}

// NormalizeMatches applies NormalizeMatch across a fetched collection.
func NormalizeMatches(requests []MatchingRequest) []MatchingRequest {
	out := make([]MatchingRequest, len(requests))
	for i, m := range requests {
		out[i] = NormalizeMatch(m)
	}
	return out
}
