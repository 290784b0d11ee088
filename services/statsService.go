package services

import (
	"DreyCare/database"
	"DreyCare/models"
	"context"
	"fmt"
)

// Statistics is the admin dashboard summary.
type Statistics struct {
	TotalPatients int64 `json:"total_patients"`
	TotalVisits   int64 `json:"total_visits"`
	TotalDrugs    int64 `json:"total_drugs"`
	TotalStaff    int64 `json:"total_staff"`
}

type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

func (s *StatsService) Summary(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Patient{}, &stats.TotalPatients},
		{&models.Visit{}, &stats.TotalVisits},
		{&models.Drug{}, &stats.TotalDrugs},
		{&models.User{}, &stats.TotalStaff},
	}
	for _, c := range counts {
		if err := database.DB.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}
	return &stats, nil
}
