package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hcmut-tutoring/tutorhub/pkg/errors"
)

type echoPayload struct {
	Name string `json:"name"`
}

func TestClientDoSuccess(t *testing.T) {
	var gotAuth, gotCache, gotContentType, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCache = r.Header.Get("Cache-Control")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Tran Van A"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	var out echoPayload
	err := client.Do(context.Background(), http.MethodGet, "/users/u1", "tok-123", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Tran Van A", out.Name)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "no-store", gotCache)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientDoNoTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	err := client.Do(context.Background(), http.MethodPost, "/auth/login", "", echoPayload{Name: "x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientDoErrorMessageFromJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"tutor is not available in that window"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	err := client.Do(context.Background(), http.MethodPost, "/sessions/schedule", "tok", nil, nil)
	require.Error(t, err)

	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.KindTransport, appErr.Kind)
	assert.Equal(t, "tutor is not available in that window", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestClientDoErrorMessageFromPlainJSONString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`"evaluation already submitted"`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	err := client.Do(context.Background(), http.MethodPost, "/evaluations", "tok", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "evaluation already submitted", apperrors.FromError(err).Message)
}

func TestClientDoErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	err := client.Do(context.Background(), http.MethodGet, "/sessions", "tok", nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apperrors.FromError(err).Message)
}

func TestClientDoNotFoundKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"report not found"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	err := client.Do(context.Background(), http.MethodGet, "/reports/rep-2", "tok", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestClientDoMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": `)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	var out echoPayload
	err := client.Do(context.Background(), http.MethodGet, "/users/u1", "tok", nil, &out)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindMalformed))
}

func TestClientDoTimeoutKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	err := client.Do(context.Background(), http.MethodGet, "/sessions", "tok", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTimeout))
}

func TestClientDoNoContentSkipsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	out := echoPayload{Name: "untouched"}
	err := client.Do(context.Background(), http.MethodDelete, "/availability/slot-1", "tok", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "untouched", out.Name)
}

func TestClientMetricsObserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	metrics := NewMetrics()
	client := NewClient(ClientParams{BaseURL: srv.URL, Metrics: metrics})
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/sessions", "tok", nil, nil))

	families, err := metrics.Gather()
	require.NoError(t, err)

	found := false
	for _, family := range families {
		if family.GetName() == "api_requests_total" {
			found = true
			require.NotEmpty(t, family.GetMetric())
			assert.Equal(t, float64(1), family.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}
