package calendar

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	for in, want := range map[string]string{
		"2024-05-20": "2024-05-20", // Monday
		"2024-05-26": "2024-05-20", // Sunday goes back six days
		"2024-05-22": "2024-05-20",
		"2024-06-01": "2024-05-27",
	} {
		d, err := domain.ParseDate(in, time.UTC)
		assert.NoError(t, err)
		assert.Equal(t, want, domain.FormatDate(StartOfWeek(d)), in)
	}
}

func TestAddMonths_ClampsDay(t *testing.T) {
	assert.Equal(t, "2024-02-29", domain.FormatDate(AddMonths(date(2024, time.January, 31), 1)))
	assert.Equal(t, "2023-02-28", domain.FormatDate(AddMonths(date(2023, time.January, 31), 1)))
	assert.Equal(t, "2023-12-15", domain.FormatDate(AddMonths(date(2024, time.January, 15), -1)))
	assert.Equal(t, "2025-01-15", domain.FormatDate(AddMonths(date(2024, time.December, 15), 1)))
}

func TestStep_RoundTripKeepsMonth(t *testing.T) {
	start := date(2023, time.January, 1)
	for i := 0; i < 800; i++ {
		anchor := start.AddDate(0, 0, i)
		back := Step(Step(anchor, domain.GranularityMonth, 1), domain.GranularityMonth, -1)
		assert.Equal(t, anchor.Year(), back.Year(), domain.FormatDate(anchor))
		assert.Equal(t, anchor.Month(), back.Month(), domain.FormatDate(anchor))

		assert.Equal(t, anchor, Step(Step(anchor, domain.GranularityWeek, 1), domain.GranularityWeek, -1))
		assert.Equal(t, anchor, Step(Step(anchor, domain.GranularityDay, -1), domain.GranularityDay, 1))
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end := PeriodBounds(date(2024, time.February, 14), domain.GranularityMonth)
	assert.Equal(t, "2024-01-29", domain.FormatDate(start))
	assert.Equal(t, "2024-03-10", domain.FormatDate(end))

	start, end = PeriodBounds(date(2024, time.May, 26), domain.GranularityDay)
	assert.Equal(t, start, end)
}
