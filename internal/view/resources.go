package view

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type resourceAPI interface {
	GetResources(ctx context.Context, token string) ([]models.Resource, error)
	AddResource(ctx context.Context, req models.AddResourceRequest, token string) (models.Resource, error)
	RemoveResource(ctx context.Context, resourceID, token string) error
}

// ResourceLibrary drives the shared study-materials page.
type ResourceLibrary struct {
	api    resourceAPI
	ident  identitySource
	logger *zap.Logger

	state Loadable[[]models.Resource]
}

// ResourceLibraryParams groups constructor dependencies.
type ResourceLibraryParams struct {
	API      resourceAPI
	Identity identitySource
	Logger   *zap.Logger
}

// NewResourceLibrary builds the view.
func NewResourceLibrary(params ResourceLibraryParams) *ResourceLibrary {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceLibrary{
		api:    params.API,
		ident:  params.Identity,
		logger: logger,
	}
}

// Load fetches every shared material.
func (v *ResourceLibrary) Load(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.state.Clear(gateErr)
		}
		return
	}
	gen := v.state.Begin()
	resources, err := v.api.GetResources(ctx, snapshot.Token)
	if err != nil {
		v.logger.Warn("unable to load resources", zap.Error(err))
		v.state.Fail(gen, err)
		return
	}
	v.state.Resolve(gen, resources)
}

// Add attaches a material and upserts the saved record at the head.
func (v *ResourceLibrary) Add(ctx context.Context, req models.AddResourceRequest) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	created, err := v.api.AddResource(ctx, req, snapshot.Token)
	if err != nil {
		return err
	}
	v.state.Set(UpsertHead(v.state.Data(), created, resourceID))
	return nil
}

// Remove detaches a material and drops it locally on success.
func (v *ResourceLibrary) Remove(ctx context.Context, id string) error {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return gateErr
		}
		return nil
	}
	if err := v.api.RemoveResource(ctx, id, snapshot.Token); err != nil {
		return err
	}
	v.state.Set(RemoveByID(v.state.Data(), id, resourceID))
	return nil
}

// State exposes the material list with its phase and error.
func (v *ResourceLibrary) State() (Phase, []models.Resource, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// Search derives the materials whose title or description contains the
// query, case-insensitive. Pure filter over the in-memory list.
func (v *ResourceLibrary) Search(query string) []models.Resource {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return v.state.Data()
	}
	var matched []models.Resource
	for _, r := range v.state.Data() {
		if strings.Contains(strings.ToLower(r.Title), query) ||
			strings.Contains(strings.ToLower(r.Description), query) {
			matched = append(matched, r)
		}
	}
	return matched
}

func resourceID(r models.Resource) string { return r.ResourceID }
