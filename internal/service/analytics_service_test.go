package service

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sira-labs/sira-api/internal/models"
	"github.com/sira-labs/sira-api/internal/repository"
)

func TestComputeStats(t *testing.T) {
	students := []models.Student{
		{YearLevel: "1st Year", Course: "BSCS"},
		{YearLevel: "1st Year", Course: "BSIT"},
		{YearLevel: "2nd Year", Course: "BSCS"},
	}

	stats := ComputeStats(students)
	require.Equal(t, 3, stats.TotalStudents)
	require.Equal(t, map[string]int{"1st Year": 2, "2nd Year": 1}, stats.YearLevelDistribution)
	require.Equal(t, map[string]int{"BSCS": 2, "BSIT": 1}, stats.CourseDistribution)
}

func TestComputeStatsUnknownBucket(t *testing.T) {
	students := []models.Student{
		{YearLevel: "", Course: ""},
		{YearLevel: "1st Year", Course: "BSCS"},
	}

	stats := ComputeStats(students)
	require.Equal(t, 2, stats.TotalStudents)
	require.Equal(t, 1, stats.YearLevelDistribution[UnknownBucket])
	require.Equal(t, 1, stats.CourseDistribution[UnknownBucket])
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	require.Zero(t, stats.TotalStudents)
	require.Empty(t, stats.YearLevelDistribution)
	require.Empty(t, stats.CourseDistribution)
}

func TestAnalyticsServiceStudentStats(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := repository.NewStudentRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.Student{ID: "1", YearLevel: "1st Year", Course: "BSCS", Age: 18}))
	require.NoError(t, repo.Save(ctx, models.Student{ID: "2", YearLevel: "1st Year", Course: "BSIT", Age: 19}))

	svc := NewAnalyticsService(repo, zerolog.Nop())
	stats, err := svc.StudentStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalStudents)
	require.Equal(t, 2, stats.YearLevelDistribution["1st Year"])
}
