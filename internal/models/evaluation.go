package models

// Evaluation is a student's post-session rating. Write-once from the
// client's perspective; the backend enforces one submission per session.
type Evaluation struct {
	EvaluationID      string   `json:"evaluationId"`
	Session           *Session `json:"session,omitempty"`
	Student           *Student `json:"student,omitempty"`
	RatingQuality     int      `json:"ratingQuality,omitempty"`
	SatisfactionLevel int      `json:"satisfactionLevel,omitempty"`
	Comment           string   `json:"comment,omitempty"`
	SubmittedDate     string   `json:"submittedDate,omitempty"`
}

// CreateEvaluationRequest submits a session rating.
type CreateEvaluationRequest struct {
	SessionID         string `json:"sessionId" validate:"required"`
	StudentID         string `json:"studentId" validate:"required"`
	RatingQuality     int    `json:"ratingQuality" validate:"required,min=1,max=5"`
	SatisfactionLevel int    `json:"satisfactionLevel" validate:"required,min=1,max=5"`
	Comment           string `json:"comment,omitempty"`
}
