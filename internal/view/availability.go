package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type availabilityAPI interface {
	GetAvailabilityForTutor(ctx context.Context, tutorID, token string) ([]models.AvailabilitySlot, error)
	CreateAvailability(ctx context.Context, req models.CreateAvailabilityRequest, token string) (models.AvailabilitySlot, error)
	UpdateAvailability(ctx context.Context, slotID string, slot models.AvailabilitySlot, token string) (models.AvailabilitySlot, error)
	DeleteAvailability(ctx context.Context, slotID, token string) error
}

// AvailabilityPlanner manages a tutor's declared open time windows.
type AvailabilityPlanner struct {
	api    availabilityAPI
	ident  identitySource
	logger *zap.Logger

	state Loadable[[]models.AvailabilitySlot]
}

// AvailabilityPlannerParams groups constructor dependencies.
type AvailabilityPlannerParams struct {
	API      availabilityAPI
	Identity identitySource
	Logger   *zap.Logger
}

// NewAvailabilityPlanner builds the view.
func NewAvailabilityPlanner(params AvailabilityPlannerParams) *AvailabilityPlanner {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityPlanner{
		api:    params.API,
		ident:  params.Identity,
		logger: logger,
	}
}

// Load fetches the tutor's slots.
func (v *AvailabilityPlanner) Load(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.state.Clear(gateErr)
		}
		return
	}
	gen := v.state.Begin()
	slots, err := v.api.GetAvailabilityForTutor(ctx, snapshot.UserID, snapshot.Token)
	if err != nil {
		v.logger.Warn("unable to load availability", zap.Error(err))
		v.state.Fail(gen, err)
		return
	}
	v.state.Resolve(gen, models.NormalizeSlots(slots))
}

// Declare creates a slot and upserts the saved record at the head of the
// list; duplicate ids replace in place, never duplicate.
func (v *AvailabilityPlanner) Declare(ctx context.Context, req models.CreateAvailabilityRequest) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	created, err := v.api.CreateAvailability(ctx, req, snapshot.Token)
	if err != nil {
		return err
	}
	v.state.Set(UpsertHead(v.state.Data(), models.NormalizeSlot(created), slotID))
	return nil
}

// Update edits a slot and patches the local record with the server's copy.
func (v *AvailabilityPlanner) Update(ctx context.Context, id string, slot models.AvailabilitySlot) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	updated, err := v.api.UpdateAvailability(ctx, id, slot, snapshot.Token)
	if err != nil {
		return err
	}
	v.state.Set(PatchByID(v.state.Data(), id, slotID,
		func(models.AvailabilitySlot) models.AvailabilitySlot { return models.NormalizeSlot(updated) }))
	return nil
}

// Withdraw deletes a slot and removes it locally on success.
func (v *AvailabilityPlanner) Withdraw(ctx context.Context, id string) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	if err := v.api.DeleteAvailability(ctx, id, snapshot.Token); err != nil {
		return err
	}
	v.state.Set(RemoveByID(v.state.Data(), id, slotID))
	return nil
}

// State exposes the slot list with its phase and error.
func (v *AvailabilityPlanner) State() (Phase, []models.AvailabilitySlot, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// OpenSlots derives the slots still bookable.
func (v *AvailabilityPlanner) OpenSlots() []models.AvailabilitySlot {
	var open []models.AvailabilitySlot
	for _, s := range v.state.Data() {
		if s.Status == models.SlotAvailable {
			open = append(open, s)
		}
	}
	return open
}

func slotID(s models.AvailabilitySlot) string { return s.SlotID }
