package resilience_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasentinel/aquasentinel/internal/provider/resilience"
)

const catalogBody = `{"stations":[{"station_id":"MH-PUN-SW-001"}]}`

// catalogServer answers with statuses in order, repeating the last one, and
// serves a catalog body on 200.
func catalogServer(t *testing.T, hits *atomic.Int32, statuses ...int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(hits.Add(1))
		status := statuses[min(n, len(statuses))-1]
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = io.WriteString(w, catalogBody)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// blockingServer holds every request until the caller gives up.
func blockingServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)
	return server
}

func neverTrip(gobreaker.Counts) bool { return false }

func fastClient(name string, retries uint64, readyToTrip func(gobreaker.Counts) bool) *resilience.Client {
	cb := resilience.DefaultCircuitBreakerConfig(name)
	cb.ReadyToTrip = readyToTrip
	return resilience.NewClient(resilience.ClientConfig{
		Name:            name,
		Timeout:         time.Second,
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		CircuitBreaker:  &cb,
	})
}

func get(t *testing.T, ctx context.Context, client *resilience.Client, url string) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	return client.Do(req)
}

func TestClient_RetryOutcomes(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		retries      uint64
		wantStatus   int
		wantAttempts int32
	}{
		{"first try succeeds", []int{200}, 3, 200, 1},
		{"recovers after 5xx", []int{503, 502, 200}, 5, 200, 3},
		{"4xx is final", []int{404}, 3, 404, 1},
		{"exhausted 5xx is returned", []int{500}, 2, 500, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := catalogServer(t, &hits, tt.statuses...)
			client := fastClient("catalog-"+tt.name, tt.retries, neverTrip)

			resp, err := get(t, context.Background(), client, server.URL)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantAttempts, hits.Load())
			if tt.wantStatus == http.StatusOK {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.JSONEq(t, catalogBody, string(body))
			}
		})
	}
}

func TestClient_OpenBreakerShortCircuits(t *testing.T) {
	var hits atomic.Int32
	server := catalogServer(t, &hits, http.StatusInternalServerError)
	client := fastClient("catalog-trip", 0, resilience.DefaultReadyToTrip)

	for i := 0; i < 5; i++ {
		resp, _ := get(t, context.Background(), client, server.URL)
		if resp != nil {
			resp.Body.Close()
		}
	}
	require.Equal(t, gobreaker.StateOpen, client.CircuitBreakerState())
	before := hits.Load()

	resp, err := get(t, context.Background(), client, server.URL)
	if resp != nil {
		resp.Body.Close()
	}
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, before, hits.Load(), "open breaker must not reach the catalog")
}

func TestClient_GivesUpOnSlowCatalog(t *testing.T) {
	server := blockingServer(t)

	t.Run("client timeout", func(t *testing.T) {
		cb := resilience.DefaultCircuitBreakerConfig("catalog-timeout")
		cb.ReadyToTrip = neverTrip
		client := resilience.NewClient(resilience.ClientConfig{
			Name:            "catalog-timeout",
			Timeout:         50 * time.Millisecond,
			MaxRetries:      1,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			CircuitBreaker:  &cb,
		})

		resp, err := get(t, context.Background(), client, server.URL)
		if resp != nil {
			resp.Body.Close()
		}
		assert.Error(t, err)
	})

	t.Run("caller cancels", func(t *testing.T) {
		client := fastClient("catalog-cancel", 3, neverTrip)
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(20*time.Millisecond, cancel)

		resp, err := get(t, ctx, client, server.URL)
		if resp != nil {
			resp.Body.Close()
		}
		assert.Error(t, err)
	})
}

func TestClient_StateChangeCallbackFires(t *testing.T) {
	var hits atomic.Int32
	server := catalogServer(t, &hits, http.StatusBadGateway)

	var transitions atomic.Int32
	cb := resilience.CircuitBreakerConfig{
		Name:        "catalog-callback",
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= 2 },
		OnStateChange: func(_ string, _, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				transitions.Add(1)
			}
		},
	}
	client := resilience.NewClient(resilience.ClientConfig{
		Name:            "catalog-callback",
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		CircuitBreaker:  &cb,
	})

	resp, err := get(t, context.Background(), client, server.URL)
	if resp != nil {
		resp.Body.Close()
	}
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(1), transitions.Load())
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_RegistersWithRegistry(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("station-catalog")
	cfg.Registry = registry

	client := resilience.NewClient(cfg)

	assert.Equal(t, "station-catalog", client.Name())
	health := registry.GetHealth("station-catalog")
	require.NotNil(t, health)
	assert.True(t, health.IsHealthy())
}

func TestDefaults(t *testing.T) {
	cfg := resilience.DefaultClientConfig("station-catalog")
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, uint64(3), cfg.MaxRetries)
	require.NotNil(t, cfg.CircuitBreaker)
	assert.Equal(t, 60*time.Second, cfg.CircuitBreaker.Timeout)

	assert.False(t, resilience.DefaultReadyToTrip(gobreaker.Counts{Requests: 4, TotalFailures: 4}))
	assert.False(t, resilience.DefaultReadyToTrip(gobreaker.Counts{Requests: 10, TotalFailures: 4}))
	assert.True(t, resilience.DefaultReadyToTrip(gobreaker.Counts{Requests: 5, TotalFailures: 5}))

	err := &resilience.ServerError{StatusCode: http.StatusBadGateway}
	assert.Contains(t, err.Error(), "Bad Gateway")
}
