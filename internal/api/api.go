// Package api is the fixed catalog of named backend operations: one method
// per operation, each a literal HTTP method + path on the request client.
// The catalog is stateless; transport errors pass through unchanged.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
	apperrors "github.com/hcmut-tutoring/tutorhub/pkg/errors"
)

// Requester executes one HTTP exchange against the backend.
type Requester interface {
	Do(ctx context.Context, method, path, token string, body, out interface{}) error
}

// Facade exposes the backend operation catalog.
type Facade struct {
	client   Requester
	validate *validator.Validate
}

// New wires the facade onto a request client.
func New(client Requester) *Facade {
	return &Facade{
		client:   client,
		validate: validator.New(),
	}
}

func (f *Facade) check(payload interface{}) error {
	if err := f.validate.Struct(payload); err != nil {
		return apperrors.Wrap(err, apperrors.KindValidation, "invalid request payload")
	}
	return nil
}

// Login exchanges credentials for a bearer token.
func (f *Facade) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := f.check(req); err != nil {
		return resp, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/auth/login", "", req, &resp)
	return resp, err
}

// Register creates a new account.
func (f *Facade) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User
	if err := f.check(req); err != nil {
		return user, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/auth/register", "", req, &user)
	return user, err
}

// GetUser fetches the authoritative profile for a user id.
func (f *Facade) GetUser(ctx context.Context, userID, token string) (models.User, error) {
	var user models.User
	err := f.client.Do(ctx, http.MethodGet, "/users/"+userID, token, nil, &user)
	return user, err
}

// UpdateUser replaces mutable profile attributes.
func (f *Facade) UpdateUser(ctx context.Context, userID string, user models.User, token string) (models.User, error) {
	var updated models.User
	err := f.client.Do(ctx, http.MethodPut, "/users/"+userID, token, user, &updated)
	return updated, err
}

// ActivateUser re-enables a deactivated account.
func (f *Facade) ActivateUser(ctx context.Context, userID, token string) (models.User, error) {
	var user models.User
	err := f.client.Do(ctx, http.MethodPut, fmt.Sprintf("/users/%s/activate", userID), token, nil, &user)
	return user, err
}

// DeactivateUser disables an account.
func (f *Facade) DeactivateUser(ctx context.Context, userID, token string) (models.User, error) {
	var user models.User
	err := f.client.Do(ctx, http.MethodPut, fmt.Sprintf("/users/%s/deactivate", userID), token, nil, &user)
	return user, err
}

// GetUsers lists every account.
func (f *Facade) GetUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	err := f.client.Do(ctx, http.MethodGet, "/users", token, nil, &users)
	return users, err
}

// GetTutors lists the tutor directory.
func (f *Facade) GetTutors(ctx context.Context, token string) ([]models.Tutor, error) {
	var tutors []models.Tutor
	err := f.client.Do(ctx, http.MethodGet, "/tutors", token, nil, &tutors)
	return tutors, err
}

// GetTutorByID fetches one tutor profile.
func (f *Facade) GetTutorByID(ctx context.Context, tutorID, token string) (models.Tutor, error) {
	var tutor models.Tutor
	err := f.client.Do(ctx, http.MethodGet, "/tutors/"+tutorID, token, nil, &tutor)
	return tutor, err
}

// CreateMatchingRequest proposes a student-to-tutor pairing.
func (f *Facade) CreateMatchingRequest(ctx context.Context, req models.CreateMatchingRequest, token string) (models.MatchingRequest, error) {
	var created models.MatchingRequest
	if err := f.check(req); err != nil {
		return created, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/matching/request", token, req, &created)
	return created, err
}

// GetMatchingRequestsForStudent lists a student's pairing proposals.
func (f *Facade) GetMatchingRequestsForStudent(ctx context.Context, studentID, token string) ([]models.MatchingRequest, error) {
	var requests []models.MatchingRequest
	err := f.client.Do(ctx, http.MethodGet, "/matching/student/"+studentID, token, nil, &requests)
	return requests, err
}

// GetMatchingRequestsForTutor lists proposals awaiting a tutor's decision.
func (f *Facade) GetMatchingRequestsForTutor(ctx context.Context, tutorID, token string) ([]models.MatchingRequest, error) {
	var requests []models.MatchingRequest
	err := f.client.Do(ctx, http.MethodGet, "/matching/tutor/"+tutorID, token, nil, &requests)
	return requests, err
}

// ApproveMatchingRequest accepts a pending proposal.
func (f *Facade) ApproveMatchingRequest(ctx context.Context, requestID, token string) (models.MatchingRequest, error) {
	var updated models.MatchingRequest
	err := f.client.Do(ctx, http.MethodPost, "/matching/approve/"+requestID, token, nil, &updated)
	return updated, err
}

// RejectMatchingRequest declines a pending proposal.
func (f *Facade) RejectMatchingRequest(ctx context.Context, requestID, token string) (models.MatchingRequest, error) {
	var updated models.MatchingRequest
	err := f.client.Do(ctx, http.MethodPost, "/matching/reject/"+requestID, token, nil, &updated)
	return updated, err
}

// ScheduleSession books a new tutoring appointment.
func (f *Facade) ScheduleSession(ctx context.Context, req models.ScheduleSessionRequest, token string) (models.Session, error) {
	var session models.Session
	if err := f.check(req); err != nil {
		return session, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/sessions/schedule", token, req, &session)
	return session, err
}

// GetSessionsForStudent lists a student's appointments.
func (f *Facade) GetSessionsForStudent(ctx context.Context, studentID, token string) ([]models.Session, error) {
	var sessions []models.Session
	err := f.client.Do(ctx, http.MethodGet, "/sessions/student/"+studentID, token, nil, &sessions)
	return sessions, err
}

// GetSessionsForTutor lists a tutor's appointments.
func (f *Facade) GetSessionsForTutor(ctx context.Context, tutorID, token string) ([]models.Session, error) {
	var sessions []models.Session
	err := f.client.Do(ctx, http.MethodGet, "/sessions/tutor/"+tutorID, token, nil, &sessions)
	return sessions, err
}

// GetSessionByID fetches one appointment.
func (f *Facade) GetSessionByID(ctx context.Context, sessionID, token string) (models.Session, error) {
	var session models.Session
	err := f.client.Do(ctx, http.MethodGet, "/sessions/"+sessionID, token, nil, &session)
	return session, err
}

// GetAllSessions lists every appointment in the program.
func (f *Facade) GetAllSessions(ctx context.Context, token string) ([]models.Session, error) {
	var sessions []models.Session
	err := f.client.Do(ctx, http.MethodGet, "/sessions", token, nil, &sessions)
	return sessions, err
}

// CancelSession marks an appointment canceled.
func (f *Facade) CancelSession(ctx context.Context, sessionID, token string) (models.Session, error) {
	var session models.Session
	err := f.client.Do(ctx, http.MethodPost, "/sessions/cancel/"+sessionID, token, nil, &session)
	return session, err
}

// RescheduleSession moves an appointment to a new window.
func (f *Facade) RescheduleSession(ctx context.Context, sessionID string, req models.RescheduleRequest, token string) (models.Session, error) {
	var session models.Session
	if err := f.check(req); err != nil {
		return session, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/sessions/reschedule/"+sessionID, token, req, &session)
	return session, err
}

// CompleteSession marks an appointment completed.
func (f *Facade) CompleteSession(ctx context.Context, sessionID, token string) (models.Session, error) {
	var session models.Session
	err := f.client.Do(ctx, http.MethodPost, "/sessions/complete/"+sessionID, token, nil, &session)
	return session, err
}

// CreateAvailability declares a new open slot for a tutor.
func (f *Facade) CreateAvailability(ctx context.Context, req models.CreateAvailabilityRequest, token string) (models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	if err := f.check(req); err != nil {
		return slot, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/availability", token, req, &slot)
	return slot, err
}

// GetAvailabilityForTutor lists a tutor's declared slots.
func (f *Facade) GetAvailabilityForTutor(ctx context.Context, tutorID, token string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := f.client.Do(ctx, http.MethodGet, "/availability/tutor/"+tutorID, token, nil, &slots)
	return slots, err
}

// UpdateAvailability edits a declared slot.
func (f *Facade) UpdateAvailability(ctx context.Context, slotID string, slot models.AvailabilitySlot, token string) (models.AvailabilitySlot, error) {
	var updated models.AvailabilitySlot
	err := f.client.Do(ctx, http.MethodPut, "/availability/"+slotID, token, slot, &updated)
	return updated, err
}

// DeleteAvailability withdraws a declared slot.
func (f *Facade) DeleteAvailability(ctx context.Context, slotID, token string) error {
	return f.client.Do(ctx, http.MethodDelete, "/availability/"+slotID, token, nil, nil)
}

// AddResource attaches a study material to a session.
func (f *Facade) AddResource(ctx context.Context, req models.AddResourceRequest, token string) (models.Resource, error) {
	var resource models.Resource
	if err := f.check(req); err != nil {
		return resource, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/resources", token, req, &resource)
	return resource, err
}

// GetResources lists every shared material.
func (f *Facade) GetResources(ctx context.Context, token string) ([]models.Resource, error) {
	var resources []models.Resource
	err := f.client.Do(ctx, http.MethodGet, "/resources", token, nil, &resources)
	return resources, err
}

// GetResourceByID fetches one material.
func (f *Facade) GetResourceByID(ctx context.Context, resourceID, token string) (models.Resource, error) {
	var resource models.Resource
	err := f.client.Do(ctx, http.MethodGet, "/resources/"+resourceID, token, nil, &resource)
	return resource, err
}

// GetResourcesForSession lists materials attached to one session.
func (f *Facade) GetResourcesForSession(ctx context.Context, sessionID, token string) ([]models.Resource, error) {
	var resources []models.Resource
	err := f.client.Do(ctx, http.MethodGet, "/resources/session/"+sessionID, token, nil, &resources)
	return resources, err
}

// RemoveResource detaches a material.
func (f *Facade) RemoveResource(ctx context.Context, resourceID, token string) error {
	return f.client.Do(ctx, http.MethodDelete, "/resources/"+resourceID, token, nil, nil)
}

// CreateEvaluation submits a session rating.
func (f *Facade) CreateEvaluation(ctx context.Context, req models.CreateEvaluationRequest, token string) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := f.check(req); err != nil {
		return evaluation, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/evaluations", token, req, &evaluation)
	return evaluation, err
}

// GetEvaluationByID fetches one rating.
func (f *Facade) GetEvaluationByID(ctx context.Context, evaluationID, token string) (models.Evaluation, error) {
	var evaluation models.Evaluation
	err := f.client.Do(ctx, http.MethodGet, "/evaluations/"+evaluationID, token, nil, &evaluation)
	return evaluation, err
}

// GetEvaluationsForSession lists ratings attached to one session.
func (f *Facade) GetEvaluationsForSession(ctx context.Context, sessionID, token string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := f.client.Do(ctx, http.MethodGet, "/evaluations/session/"+sessionID, token, nil, &evaluations)
	return evaluations, err
}

// GetEvaluationsByStudent lists ratings a student submitted.
func (f *Facade) GetEvaluationsByStudent(ctx context.Context, studentID, token string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := f.client.Do(ctx, http.MethodGet, "/evaluations/student/"+studentID, token, nil, &evaluations)
	return evaluations, err
}

// GenerateReport asks the backend to build a new report document.
func (f *Facade) GenerateReport(ctx context.Context, req models.GenerateReportRequest, token string) (models.Report, error) {
	var report models.Report
	if err := f.check(req); err != nil {
		return report, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/reports/generate", token, req, &report)
	return report, err
}

// GetReport fetches one generated report.
func (f *Facade) GetReport(ctx context.Context, reportID, token string) (models.Report, error) {
	var report models.Report
	err := f.client.Do(ctx, http.MethodGet, "/reports/"+reportID, token, nil, &report)
	return report, err
}

// CreateProgressNote records a tutor note against a session.
func (f *Facade) CreateProgressNote(ctx context.Context, req models.CreateProgressNoteRequest, token string) (models.ProgressNote, error) {
	var note models.ProgressNote
	if err := f.check(req); err != nil {
		return note, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/reports/notes", token, req, &note)
	return note, err
}

// GetProgressNotesForSession lists notes attached to one session.
func (f *Facade) GetProgressNotesForSession(ctx context.Context, sessionID, token string) ([]models.ProgressNote, error) {
	var notes []models.ProgressNote
	err := f.client.Do(ctx, http.MethodGet, "/reports/notes/session/"+sessionID, token, nil, &notes)
	return notes, err
}

// CreateForumPost opens a new discussion thread.
func (f *Facade) CreateForumPost(ctx context.Context, req models.CreateForumPostRequest, token string) (models.ForumPost, error) {
	var post models.ForumPost
	if err := f.check(req); err != nil {
		return post, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/forum/posts", token, req, &post)
	return post, err
}

// GetForumPosts lists every thread.
func (f *Facade) GetForumPosts(ctx context.Context, token string) ([]models.ForumPost, error) {
	var posts []models.ForumPost
	err := f.client.Do(ctx, http.MethodGet, "/forum/posts", token, nil, &posts)
	return posts, err
}

// GetForumPostByID fetches one thread.
func (f *Facade) GetForumPostByID(ctx context.Context, postID, token string) (models.ForumPost, error) {
	var post models.ForumPost
	err := f.client.Do(ctx, http.MethodGet, "/forum/posts/"+postID, token, nil, &post)
	return post, err
}

// CreateForumReply answers an existing thread.
func (f *Facade) CreateForumReply(ctx context.Context, req models.CreateForumReplyRequest, token string) (models.ForumReply, error) {
	var reply models.ForumReply
	if err := f.check(req); err != nil {
		return reply, err
	}
	err := f.client.Do(ctx, http.MethodPost, "/forum/replies", token, req, &reply)
	return reply, err
}
