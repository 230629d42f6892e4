package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/thejerf/abtime"
)

type appInfoService struct {
	version   string
	clock     abtime.AbstractTime
	startedAt time.Time
}

// NewAppInfoService records the start time from clock. A nil clock means
// wall time.
func NewAppInfoService(cfg config.App, clock abtime.AbstractTime) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	if clock == nil {
		clock = abtime.NewRealTime()
	}

	return &appInfoService{
		version:   cfg.Version,
		clock:     clock,
		startedAt: clock.Now(),
	}, nil
}

func (s *appInfoService) Info(_ context.Context) models.AppInfo {
	return models.AppInfo{
		Version: s.version,
		Uptime:  s.clock.Now().Sub(s.startedAt).Truncate(time.Second).String(),
	}
}
