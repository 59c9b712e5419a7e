package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
)

type mockResourceAPI struct {
	resources []models.Resource
	created   models.Resource
	removeErr error
}

func (m *mockResourceAPI) GetResources(ctx context.Context, token string) ([]models.Resource, error) {
	return m.resources, nil
}

func (m *mockResourceAPI) AddResource(ctx context.Context, req models.AddResourceRequest, token string) (models.Resource, error) {
	return m.created, nil
}

func (m *mockResourceAPI) RemoveResource(ctx context.Context, resourceID, token string) error {
	return m.removeErr
}

func newLibrary(api *mockResourceAPI) *ResourceLibrary {
	return NewResourceLibrary(ResourceLibraryParams{
		API:      api,
		Identity: loggedIn("u-2", models.RoleTutor),
	})
}

func TestResourceLibraryLoadAndSearch(t *testing.T) {
	api := &mockResourceAPI{resources: []models.Resource{
		{ResourceID: "r-1", Title: "Calculus lecture notes"},
		{ResourceID: "r-2", Title: "Physics problems", Description: "covers mechanics"},
	}}
	v := newLibrary(api)
	v.Load(context.Background())

	phase, resources, err := v.State()
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, phase)
	assert.Len(t, resources, 2)

	matched := v.Search("CALCULUS")
	require.Len(t, matched, 1)
	assert.Equal(t, "r-1", matched[0].ResourceID)

	matched = v.Search("mechanics")
	require.Len(t, matched, 1)
	assert.Equal(t, "r-2", matched[0].ResourceID)

	assert.Len(t, v.Search("  "), 2)
}

func TestResourceLibraryAdd(t *testing.T) {
	api := &mockResourceAPI{
		resources: []models.Resource{{ResourceID: "r-1"}},
		created:   models.Resource{ResourceID: "r-2", Title: "Integration worksheet"},
	}
	v := newLibrary(api)
	v.Load(context.Background())

	require.NoError(t, v.Add(context.Background(), models.AddResourceRequest{
		SessionID: "session-1",
		Title:     "Integration worksheet",
	}))

	_, resources, _ := v.State()
	require.Len(t, resources, 2)
	assert.Equal(t, "r-2", resources[0].ResourceID)
}

func TestResourceLibraryRemove(t *testing.T) {
	api := &mockResourceAPI{resources: []models.Resource{
		{ResourceID: "r-1"}, {ResourceID: "r-2"},
	}}
	v := newLibrary(api)
	v.Load(context.Background())

	require.NoError(t, v.Remove(context.Background(), "r-1"))

	_, resources, _ := v.State()
	require.Len(t, resources, 1)
	assert.Equal(t, "r-2", resources[0].ResourceID)
}
