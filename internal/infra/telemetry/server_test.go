package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pogomcp/internal/domain"
)

type stubStatusReporter struct {
	statuses []domain.CategoryStatus
}

func (s *stubStatusReporter) Status() []domain.CategoryStatus {
	return s.statuses
}

func mustListen(t *testing.T) net.Listener {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return listener
}

func TestStartHTTPServer_MetricsAndHealthz(t *testing.T) {
	listener := mustListen(t)
	addr := listener.Addr().String()
	listener.Close()

	registry := prometheus.NewRegistry()
	m := NewPrometheusMetrics(registry)
	m.SetSnapshotItems(domain.CategoryEvents, 3)

	reporter := &stubStatusReporter{statuses: []domain.CategoryStatus{
		{Category: domain.CategoryEvents, Loaded: true, Count: 3, Age: time.Minute},
		{Category: domain.CategoryRaids, Loaded: false},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- StartHTTPServer(ctx, HTTPServerOptions{
			Addr:          addr,
			EnableMetrics: true,
			EnableHealthz: true,
			Status:        reporter,
			Registry:      registry,
		}, zap.NewNop())
	}()

	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "pogomcp_snapshot_items")

	resp, err = http.Get(fmt.Sprintf("http://%s/healthz", addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report healthReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "ok", report.Status)
	require.Len(t, report.Categories, 2)
	assert.True(t, report.Categories[0].Loaded)
	assert.False(t, report.Categories[1].Loaded)

	cancel()
	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartHTTPServer_DisabledReturnsImmediately(t *testing.T) {
	err := StartHTTPServer(context.Background(), HTTPServerOptions{}, zap.NewNop())
	require.NoError(t, err)
}
