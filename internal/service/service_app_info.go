package service

import (
	"context"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

type appInfoService struct {
	info models.VersionInfo

	logger *logger.Logger
}

func NewAppInfoService(buildInfo models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		info:   buildInfo.VersionInfo(),
		logger: logger,
	}
}

func (s *appInfoService) GetVersionInfo(ctx context.Context) models.VersionInfo {
	return s.info
}
