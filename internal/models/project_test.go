package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseProjectStatus(t *testing.T) {
	status, err := ParseProjectStatus("En Progreso")
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, status)

	_, err = ParseProjectStatus("In Progress")
	require.Error(t, err, "only the wire values are accepted")
}

func TestUpcomingDeliveries(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	projects := []Project{
		{Name: "done", Status: StatusCompleted, EndDate: "2024-06-10"},
		{Name: "past", Status: StatusInProgress, EndDate: "2024-05-01"},
		{Name: "soon", Status: StatusInProgress, EndDate: "2024-06-05"},
		{Name: "later", Status: StatusNotStarted, EndDate: "2024-07-01"},
		{Name: "paused", Status: StatusOnHold, EndDate: "2024-06-20"},
		{Name: "nodate", Status: StatusInProgress},
	}

	upcoming := UpcomingDeliveries(projects, now, 4)

	names := make([]string, len(upcoming))
	for i, p := range upcoming {
		names[i] = p.Name
	}
	require.Equal(t, []string{"soon", "paused", "later"}, names)
}

func TestUpcomingDeliveriesHonorsLimit(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	projects := []Project{
		{Name: "a", Status: StatusInProgress, EndDate: "2024-06-02"},
		{Name: "b", Status: StatusInProgress, EndDate: "2024-06-03"},
		{Name: "c", Status: StatusInProgress, EndDate: "2024-06-04"},
	}

	upcoming := UpcomingDeliveries(projects, now, 2)
	require.Len(t, upcoming, 2)
	require.Equal(t, "a", upcoming[0].Name)
}

func TestProjectDateParsing(t *testing.T) {
	p := Project{StartDate: "2024-01-15", EndDate: "2024-02-20T10:00:00Z"}
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), p.Start())
	require.Equal(t, time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC), p.End())

	require.True(t, Project{EndDate: "garbage"}.End().IsZero())
}
