package models

import "encoding/json"

// ReportType names the report flavours the backend can generate.
type ReportType string

const (
	ReportSessionHistory   ReportType = "SESSION_HISTORY"
	ReportTutorPerformance ReportType = "TUTOR_PERFORMANCE"
	ReportStudentActivity  ReportType = "STUDENT_ACTIVITY"
)

// Report is a backend-generated document. Criteria is opaque text, often
// JSON; the stored string is never mutated by render-time parsing.
type Report struct {
	ReportID      string     `json:"reportId"`
	ReportType    ReportType `json:"reportType,omitempty"`
	Criteria      string     `json:"criteria,omitempty"`
	GeneratedBy   string     `json:"generatedBy,omitempty"`
	GeneratedDate string     `json:"generatedDate,omitempty"`
	Content       string     `json:"content,omitempty"`
}

// CriteriaFields best-effort parses the criteria string as a flat JSON
// object for display. Returns nil when the criteria is not JSON.
func (r Report) CriteriaFields() map[string]string {
	if r.Criteria == "" {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(r.Criteria), &raw); err != nil {
		return nil
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			fields[k] = s
			continue
		}
		fields[k] = string(v)
	}
	return fields
}

// GenerateReportRequest asks the backend to build a new report.
type GenerateReportRequest struct {
	ReportType  ReportType `json:"reportType" validate:"required,oneof=SESSION_HISTORY TUTOR_PERFORMANCE STUDENT_ACTIVITY"`
	Criteria    string     `json:"criteria,omitempty"`
	GeneratedBy string     `json:"generatedBy,omitempty"`
}

// ProgressNote is a tutor's free-form note on a session.
type ProgressNote struct {
	NoteID    string   `json:"noteId"`
	Session   *Session `json:"session,omitempty"`
	Tutor     *Tutor   `json:"tutor,omitempty"`
	Student   *Student `json:"student,omitempty"`
	Content   string   `json:"content,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// CreateProgressNoteRequest records a note against a session.
type CreateProgressNoteRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	TutorID   string `json:"tutorId" validate:"required"`
	Content   string `json:"content" validate:"required"`
}
