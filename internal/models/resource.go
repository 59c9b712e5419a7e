package models

// Resource is a study material a tutor attaches to a session.
type Resource struct {
	ResourceID        string   `json:"resourceId"`
	Title             string   `json:"title,omitempty"`
	Description       string   `json:"description,omitempty"`
	ExternalLibraryID string   `json:"externalLibraryId,omitempty"`
	LinkURL           string   `json:"linkURL,omitempty"`
	AddedByTutor      *Tutor   `json:"addedByTutor,omitempty"`
	Session           *Session `json:"session,omitempty"`
}

// AddResourceRequest attaches a material to a session.
type AddResourceRequest struct {
	SessionID   string `json:"sessionId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	LinkURL     string `json:"linkURL,omitempty" validate:"omitempty,url"`
}
