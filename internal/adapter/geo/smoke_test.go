//go:build geosmoke

package geo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairnhealth/altitude-risk-service/internal/observability"
)

// These tests hit the real Open-Meteo APIs and need network access.
// Run with: go test -tags=geosmoke ./internal/adapter/geo/ -v -count=1

func smokeClient() *Client {
	return NewClient(10*time.Second, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_ResolveCusco(t *testing.T) {
	c := smokeClient()

	result, err := c.ResolvePlace(context.Background(), "Cusco")
	require.NoError(t, err)

	assert.InDelta(t, -13.52, result.Latitude, 0.2, "lat should be near Cusco")
	assert.InDelta(t, -71.97, result.Longitude, 0.2, "lon should be near Cusco")
	assert.Greater(t, result.ElevationMeters, 3000.0)
	assert.Contains(t, result.FormattedAddress, "Peru")
}

func TestSmoke_ResolveUnknownPlace(t *testing.T) {
	c := smokeClient()

	_, err := c.ResolvePlace(context.Background(), "xzqwv-not-a-place-xzqwv")
	require.Error(t, err)
}
