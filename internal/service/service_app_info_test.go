package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
	"github.com/stretchr/testify/assert"
)

// ─────────────────────────────────────────────
// GetVersionInfo
// ─────────────────────────────────────────────

func TestGetVersionInfo_ReturnsBuildInfo(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("1.2.0", "2026-10-01", "abc123"), logger.Nop())

	got := svc.GetVersionInfo(context.Background())

	assert.Equal(t, models.VersionInfo{Version: "1.2.0", Date: "2026-10-01", Commit: "abc123"}, got)
}

func TestGetVersionInfo_EmptyBuildInfo(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("", "", ""), logger.Nop())

	got := svc.GetVersionInfo(context.Background())

	assert.Equal(t, models.VersionInfo{Version: "N/A", Date: "N/A", Commit: "N/A"}, got)
}

func TestGetVersionInfo_DifferentInstances_IndependentVersions(t *testing.T) {
	svc1 := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	svc2 := NewAppInfoService(models.NewAppBuildInfo("2.0.0", "", ""), logger.Nop())

	assert.Equal(t, "1.0.0", svc1.GetVersionInfo(context.Background()).Version)
	assert.Equal(t, "2.0.0", svc2.GetVersionInfo(context.Background()).Version)
}
