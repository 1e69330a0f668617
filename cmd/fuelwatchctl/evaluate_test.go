package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runEvaluateArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagDueOdometer = -1
	flagDueDate = ""
	flagOdometer = 0
	flagThresholdDistance = 1000
	flagThresholdDays = 15

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"evaluate"}, args...))

	err := rootCmd.Execute()

	return out.String(), err
}

func TestEvaluate_UrgentByDistance(t *testing.T) {
	out, err := runEvaluateArgs(t, "--due-odometer", "50000", "--odometer", "49500")

	require.NoError(t, err)
	assert.Contains(t, out, "Status:  urgent")
}

func TestEvaluate_OverdueByDate(t *testing.T) {
	out, err := runEvaluateArgs(t, "--due-date", "2000-01-01")

	require.NoError(t, err)
	assert.Contains(t, out, "Status:  overdue")
}

func TestEvaluate_NotDue(t *testing.T) {
	due := time.Now().AddDate(0, 6, 0).Format(time.DateOnly)

	out, err := runEvaluateArgs(t, "--due-date", due, "--due-odometer", "90000", "--odometer", "40000")

	require.NoError(t, err)
	assert.Contains(t, out, "Status:  ok")
}

func TestEvaluate_RequiresDueCondition(t *testing.T) {
	_, err := runEvaluateArgs(t, "--odometer", "1000")

	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())

	got, err = parseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())

	_, err = parseDate("next tuesday")
	assert.Error(t, err)
}
