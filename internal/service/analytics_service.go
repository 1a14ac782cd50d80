package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sira-labs/sira-api/internal/dto"
	"github.com/sira-labs/sira-api/internal/models"
	"github.com/sira-labs/sira-api/internal/repository"
)

// UnknownBucket is the distribution key used when a record carries an empty
// yearLevel or course value. Such records are counted, never dropped.
const UnknownBucket = "unknown"

// AnalyticsService derives category distributions over the full record set,
// recomputed on every call.
type AnalyticsService interface {
	StudentStats(ctx context.Context) (dto.StudentStatsResponse, error)
}

type analyticsService struct {
	repo   repository.StudentRepository
	logger zerolog.Logger
}

// NewAnalyticsService constructs the analytics service.
func NewAnalyticsService(repo repository.StudentRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger.With().Str("component", "analytics_service").Logger(),
	}
}

func (s *analyticsService) StudentStats(ctx context.Context) (dto.StudentStatsResponse, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}

	return ComputeStats(students), nil
}

// ComputeStats builds the year-level and course distributions for a record
// set. Pure and deterministic; O(n) over the input.
func ComputeStats(students []models.Student) dto.StudentStatsResponse {
	stats := dto.StudentStatsResponse{
		TotalStudents:         len(students),
		YearLevelDistribution: make(map[string]int),
		CourseDistribution:    make(map[string]int),
	}

	for _, student := range students {
		stats.YearLevelDistribution[bucket(student.YearLevel)]++
		stats.CourseDistribution[bucket(student.Course)]++
	}

	return stats
}

func bucket(value string) string {
	if value == "" {
		return UnknownBucket
	}
	return value
}
