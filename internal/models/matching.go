package models

// MatchingStatus is the server-authoritative state of a pairing proposal.
// The client reflects transitions only after a successful mutation call.
type MatchingStatus string

const (
	MatchPending  MatchingStatus = "PENDING"
	MatchAccepted MatchingStatus = "ACCEPTED"
	MatchRejected MatchingStatus = "REJECTED"
	MatchExpired  MatchingStatus = "EXPIRED"
)

// MatchingRequest is a student-to-tutor pairing proposal awaiting a decision.
type MatchingRequest struct {
	RequestID          string         `json:"requestId"`
	Student            *Student       `json:"student,omitempty"`
	Tutor              *Tutor         `json:"tutor,omitempty"`
	Subject            string         `json:"subject,omitempty"`
	PreferredTimeSlots []string       `json:"preferredTimeSlots,omitempty"`
	Status             MatchingStatus `json:"status,omitempty"`
	CreatedDate        string         `json:"createdDate,omitempty"`
}

// CreateMatchingRequest proposes a student-to-tutor pairing.
type CreateMatchingRequest struct {
	StudentID          string   `json:"studentId" validate:"required"`
	TutorID            string   `json:"tutorId" validate:"required"`
	Subject            string   `json:"subject,omitempty"`
	PreferredTimeSlots []string `json:"preferredTimeSlots,omitempty"`
}
