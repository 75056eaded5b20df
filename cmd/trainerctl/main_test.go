package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCalendar_DayView(t *testing.T) {
	out, err := run(t, "calendar", "--view", "day", "--anchor", "2024-05-26")
	require.NoError(t, err)
	assert.Contains(t, out, "Anna Ivanova")
	assert.Contains(t, out, "Maria Petrova")
	assert.Contains(t, out, "09:00")
}

func TestCalendar_MonthStep(t *testing.T) {
	out, err := run(t, "calendar", "--anchor", "2024-05-26", "--step", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "April 2024")
}

func TestCalendar_InvalidView(t *testing.T) {
	_, err := run(t, "calendar", "--view", "year")
	assert.Error(t, err)
}

func TestClients(t *testing.T) {
	out, err := run(t, "clients", "--search", "maria")
	require.NoError(t, err)
	assert.Contains(t, out, "Maria Petrova")
	assert.NotContains(t, out, "Anna Ivanova")

	_, err = run(t, "clients", "--status", "retired")
	assert.Error(t, err)
}

func TestWorkouts(t *testing.T) {
	out, err := run(t, "workouts", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Petr Sidorov")
	assert.NotContains(t, out, "Anna Ivanova")
}

func TestExercisesAndTemplate(t *testing.T) {
	out, err := run(t, "exercises", "--category", "cardio")
	require.NoError(t, err)
	assert.Contains(t, out, "Running")
	assert.NotContains(t, out, "Bench press")

	out, err = run(t, "template", "generate", "--type", "cardio", "--level", "beginner")
	require.NoError(t, err)
	assert.Contains(t, out, "Cardio (beginner)")
}

func TestAction(t *testing.T) {
	out, err := run(t, "action", "help")
	require.NoError(t, err)
	assert.Contains(t, out, "[info]")

	_, err = run(t, "action", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nutrition.add")

	_, err = run(t, "action", "calendar.view", "week")
	assert.Error(t, err)
}

func TestStatsAndDashboard(t *testing.T) {
	out, err := run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Statistics (3 workouts)")

	out, err = run(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "clients: 3 (3 active)")
}
