package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type userAdminAPI interface {
	GetUsers(ctx context.Context, token string) ([]models.User, error)
	ActivateUser(ctx context.Context, userID, token string) (models.User, error)
	DeactivateUser(ctx context.Context, userID, token string) (models.User, error)
	UpdateUser(ctx context.Context, userID string, user models.User, token string) (models.User, error)
}

// UserDirectory drives the coordinator's users-management page.
type UserDirectory struct {
	api    userAdminAPI
	ident  identitySource
	logger *zap.Logger

	state Loadable[[]models.User]
}

// UserDirectoryParams groups constructor dependencies.
type UserDirectoryParams struct {
	API      userAdminAPI
	Identity identitySource
	Logger   *zap.Logger
}

// NewUserDirectory builds the view.
func NewUserDirectory(params UserDirectoryParams) *UserDirectory {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserDirectory{
		api:    params.API,
		ident:  params.Identity,
		logger: logger,
	}
}

// Load fetches the full account list.
func (v *UserDirectory) Load(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.state.Clear(gateErr)
		}
		return
	}
	gen := v.state.Begin()
	users, err := v.api.GetUsers(ctx, snapshot.Token)
	if err != nil {
		v.logger.Warn("unable to load users", zap.Error(err))
		v.state.Fail(gen, err)
		return
	}
	v.state.Resolve(gen, users)
}

// Activate re-enables an account and patches the local record in place.
func (v *UserDirectory) Activate(ctx context.Context, userID string) error {
	return v.toggle(ctx, userID, true)
}

// Deactivate disables an account with the same patch semantics.
func (v *UserDirectory) Deactivate(ctx context.Context, userID string) error {
	return v.toggle(ctx, userID, false)
}

func (v *UserDirectory) toggle(ctx context.Context, userID string, activate bool) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}

	var (
		updated models.User
		err     error
	)
	if activate {
		updated, err = v.api.ActivateUser(ctx, userID, snapshot.Token)
	} else {
		updated, err = v.api.DeactivateUser(ctx, userID, snapshot.Token)
	}
	if err != nil {
		return err
	}

	v.state.Set(PatchByID(v.state.Data(), userID,
		func(u models.User) string { return u.UserID },
		func(models.User) models.User { return updated }))
	return nil
}

// Update saves profile edits and patches the local record.
func (v *UserDirectory) Update(ctx context.Context, userID string, user models.User) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	updated, err := v.api.UpdateUser(ctx, userID, user, snapshot.Token)
	if err != nil {
		return err
	}
	v.state.Set(PatchByID(v.state.Data(), userID,
		func(u models.User) string { return u.UserID },
		func(models.User) models.User { return updated }))
	return nil
}

// State exposes the account list with its phase and error.
func (v *UserDirectory) State() (Phase, []models.User, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// ByRole derives the accounts holding one role.
func (v *UserDirectory) ByRole(role models.Role) []models.User {
	var filtered []models.User
	for _, u := range v.state.Data() {
		if u.Role == role {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// ActiveCount derives how many accounts are not deactivated.
func (v *UserDirectory) ActiveCount() int {
	return ActiveUserCount(v.state.Data())
}
