package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracking.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err, "explicit missing file must fail")

	t.Setenv("TRACKING_CONFIG", filepath.Join(t.TempDir(), "absent.yml"))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Tracking.MinUpdateIntervalS)
	assert.Equal(t, 24, cfg.Tracking.MaxRouteAgeH)
	assert.Equal(t, 1000, cfg.Tracking.MaxRoutePoints)
	assert.Equal(t, 50.0, cfg.Tracking.DefaultAccuracyM)
	assert.Empty(t, cfg.Zones)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
tracking:
  min_update_interval_s: 10
  max_route_age_h: 48
  max_route_points: 500
  default_accuracy_m: 25
zones:
  - name: home
    latitude: 52.52
    longitude: 13.405
    radius_m: 100
  - name: park
    latitude: 52.53
    longitude: 13.41
    radius_m: 400
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Tracking.MinUpdateIntervalS)
	assert.Equal(t, 48, cfg.Tracking.MaxRouteAgeH)
	assert.Equal(t, 500, cfg.Tracking.MaxRoutePoints)
	require.Len(t, cfg.Zones, 2)
	assert.Equal(t, "home", cfg.Zones[0].Name)
	assert.Equal(t, 400.0, cfg.Zones[1].RadiusM)
}

func TestLoadRejectsZeroMaxPoints(t *testing.T) {
	path := writeConfig(t, `
tracking:
  max_route_points: 0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracking config")
}

func TestLoadRejectsInvalidZone(t *testing.T) {
	path := writeConfig(t, `
zones:
  - name: broken
    latitude: 95
    longitude: 0
    radius_m: 50
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone")
}
