package models

// AvailabilityStatus tracks whether a declared slot is still bookable.
type AvailabilityStatus string

const (
	SlotAvailable AvailabilityStatus = "AVAILABLE"
	SlotBooked    AvailabilityStatus = "BOOKED"
)

// AvailabilitySlot is a tutor-declared open time window. Slots are created
// by tutors and consumed when sessions are scheduled or rescheduled.
type AvailabilitySlot struct {
	SlotID      string             `json:"slotId"`
	Tutor       *Tutor             `json:"tutor,omitempty"`
	StartTime   string             `json:"startTime,omitempty"`
	EndTime     string             `json:"endTime,omitempty"`
	IsRecurring bool               `json:"isRecurring,omitempty"`
	Status      AvailabilityStatus `json:"status,omitempty"`
}

// CreateAvailabilityRequest declares a new open window for a tutor.
type CreateAvailabilityRequest struct {
	TutorID     string `json:"tutorId" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	IsRecurring bool   `json:"isRecurring,omitempty"`
}
