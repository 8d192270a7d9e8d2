package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTelemetryClient_FetchFleet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "d1", "owner_id": "o1", "x": 1.5, "y": 2.5, "z": 10},
			{"x": 100, "y": 200}
		]`))
	}))
	defer server.Close()

	client := NewTelemetryClient(server.URL, 0, zap.NewNop())

	fleet, err := client.FetchFleet(context.Background())
	require.NoError(t, err)
	require.Len(t, fleet, 2)

	require.NotNil(t, fleet[0].ID)
	assert.Equal(t, "d1", *fleet[0].ID)
	require.NotNil(t, fleet[0].OwnerID)
	assert.Equal(t, "o1", *fleet[0].OwnerID)
	assert.Equal(t, 1.5, *fleet[0].X)

	assert.Nil(t, fleet[1].ID)
	assert.Nil(t, fleet[1].OwnerID)
	assert.Nil(t, fleet[1].Z)
}

func TestTelemetryClient_FetchFleet_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewTelemetryClient(server.URL, 0, zap.NewNop())

	_, err := client.FetchFleet(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestTelemetryClient_FetchFleet_UnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"`))
	}))
	defer server.Close()

	client := NewTelemetryClient(server.URL, 0, zap.NewNop())

	_, err := client.FetchFleet(context.Background())
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestTelemetryClient_FetchFleet_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewTelemetryClient(server.URL, 20*time.Millisecond, zap.NewNop())

	_, err := client.FetchFleet(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestTelemetryClient_FetchFleet_ConnectionRefused(t *testing.T) {
	client := NewTelemetryClient("http://127.0.0.1:1/drones", 0, zap.NewNop())

	_, err := client.FetchFleet(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}
