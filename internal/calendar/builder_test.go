package calendar

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedBuilder(today time.Time) *Builder {
	return NewBuilder(Options{Now: func() time.Time { return today.Add(10 * time.Hour) }})
}

var names = DirectoryFunc(func(id int64) (string, bool) {
	switch id {
	case 1:
		return "Anna Ivanova", true
	case 3:
		return "Maria Petrova", true
	}
	return "", false
})

func TestMonth_AlwaysFortyTwoCells(t *testing.T) {
	b := fixedBuilder(date(2024, time.May, 26))
	for _, anchor := range []time.Time{
		date(2024, time.February, 10), // 29 days
		date(2024, time.January, 31),  // 31 days
		date(2021, time.February, 1),  // 28 days starting on Monday, fits in 4 rows
		date(2024, time.September, 1), // starts on Sunday
	} {
		grid := b.Month(anchor, nil, names)
		require.Len(t, grid.Rows, MonthRows, anchor)
		for _, row := range grid.Rows {
			require.Len(t, row, MonthColumns)
		}
		assert.Len(t, grid.Cells(), MonthCells)
	}
}

func TestMonth_MondayStartAndAdjacentDays(t *testing.T) {
	b := fixedBuilder(date(2024, time.May, 26))

	// 1 September 2024 is a Sunday: the grid starts on Monday 26 August.
	grid := b.Month(date(2024, time.September, 15), nil, names)
	first := grid.Rows[0][0]
	assert.Equal(t, "2024-08-26", first.Date)
	assert.False(t, first.IsCurrentPeriod)
	assert.Equal(t, "2024-09-01", grid.Rows[0][6].Date)
	assert.True(t, grid.Rows[0][6].IsCurrentPeriod)
	assert.Equal(t, "Mon", grid.Columns[0].Weekday)
	assert.Equal(t, "September 2024", grid.Title)

	current := 0
	for _, c := range grid.Cells() {
		if c.IsCurrentPeriod {
			current++
		}
	}
	assert.Equal(t, 30, current)
}

func TestMonth_TodayAndOverflow(t *testing.T) {
	b := fixedBuilder(date(2024, time.May, 26))
	workouts := []domain.Workout{
		{ID: 1, ClientID: 1, Date: "2024-05-26", Time: "18:00"},
		{ID: 2, ClientID: 1, Date: "2024-05-26", Time: "09:00"},
		{ID: 3, ClientID: 3, Date: "2024-05-26", Time: "12:00"},
		{ID: 4, ClientID: 99, Date: "2024-05-26", Time: "07:00"},
		{ID: 5, ClientID: 3, Date: "2024-05-26", Time: "20:00"},
	}
	grid := b.Month(date(2024, time.May, 1), workouts, names)

	var today *Cell
	for i, c := range grid.Cells() {
		if c.IsToday {
			cells := grid.Cells()
			today = &cells[i]
		}
	}
	require.NotNil(t, today)
	assert.Equal(t, "2024-05-26", today.Date)
	require.Len(t, today.Workouts, 5)
	require.Len(t, today.Visible, 3)
	assert.Equal(t, 2, today.Overflow)
	assert.Equal(t, "07:00", today.Visible[0].Time)
	assert.Equal(t, DefaultUnknownClientLabel, today.Visible[0].ClientName)
	assert.Equal(t, "Anna Ivanova", today.Visible[1].ClientName)
}

func TestDay_SortedByTime(t *testing.T) {
	b := fixedBuilder(date(2024, time.May, 1))
	workouts := []domain.Workout{
		{ID: 10, ClientID: 3, Date: "2024-05-26", Time: "14:00"},
		{ID: 11, ClientID: 1, Date: "2024-05-26", Time: "09:00"},
		{ID: 12, ClientID: 1, Date: "2024-05-27", Time: "08:00"},
	}
	grid := b.Day(date(2024, time.May, 26), workouts, names)
	require.Len(t, grid.Rows, 1)
	require.Len(t, grid.Rows[0], 1)
	cell := grid.Rows[0][0]
	require.Len(t, cell.Workouts, 2)
	assert.Equal(t, int64(1), cell.Workouts[0].ClientID)
	assert.Equal(t, int64(3), cell.Workouts[1].ClientID)
	assert.Equal(t, []string{"09:00", "14:00"}, []string{cell.Workouts[0].Time, cell.Workouts[1].Time})
	assert.Equal(t, "Sunday, 26 May 2024", grid.Title)
}

func TestDay_EmptyDate(t *testing.T) {
	b := fixedBuilder(date(2024, time.May, 1))
	grid := b.Day(date(2030, time.January, 1), nil, names)
	assert.NotNil(t, grid.Rows[0][0].Workouts)
	assert.Empty(t, grid.Rows[0][0].Workouts)
}

func TestWeek_SlotsAndConflicts(t *testing.T) {
	b := fixedBuilder(date(2024, time.May, 22))
	workouts := []domain.Workout{
		{ID: 1, ClientID: 1, Date: "2024-05-26", Time: "09:00"},
		{ID: 2, ClientID: 3, Date: "2024-05-26", Time: "09:30"},
		{ID: 3, ClientID: 3, Date: "2024-05-20", Time: "21:00"},
		{ID: 4, ClientID: 1, Date: "2024-05-21", Time: "06:00"}, // outside the slot range
		{ID: 5, ClientID: 1, Date: "2024-05-27", Time: "09:00"}, // next week
	}
	grid := b.Week(date(2024, time.May, 26), workouts, names)

	require.Len(t, grid.Rows, 14)
	assert.Equal(t, "08:00", grid.RowLabels[0])
	assert.Equal(t, "21:00", grid.RowLabels[13])
	assert.Equal(t, "2024-05-20", grid.Start)
	assert.Equal(t, "2024-05-26", grid.End)
	assert.Equal(t, "20 May – 26 May 2024", grid.Title)

	nine := grid.Rows[1][6] // 09:00 on Sunday
	assert.Equal(t, "09:00", nine.Slot)
	require.Len(t, nine.Workouts, 2)
	assert.True(t, nine.Conflict)
	assert.Equal(t, int64(1), nine.Workouts[0].ID, "earliest booking is the slot's primary workout")

	last := grid.Rows[13][0]
	require.Len(t, last.Workouts, 1)
	assert.Equal(t, int64(3), last.Workouts[0].ID)
	assert.False(t, last.Conflict)

	total := 0
	for _, c := range grid.Cells() {
		total += len(c.Workouts)
	}
	assert.Equal(t, 3, total)
	assert.True(t, grid.Columns[2].IsToday)
}

func TestBuild_DispatchesOnGranularity(t *testing.T) {
	b := fixedBuilder(date(2024, time.May, 1))
	anchor := date(2024, time.May, 26)
	assert.Len(t, b.Build(anchor, domain.GranularityMonth, nil, nil).Cells(), 42)
	assert.Len(t, b.Build(anchor, domain.GranularityWeek, nil, nil).Cells(), 14*7)
	assert.Len(t, b.Build(anchor, domain.GranularityDay, nil, nil).Cells(), 1)
	assert.Len(t, b.Build(anchor, "year", nil, nil).Cells(), 42)
}

func TestBuilder_LocationNormalizesAnchor(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	b := NewBuilder(Options{Location: loc, Now: func() time.Time { return date(2024, time.May, 1) }})
	// 22:30 UTC on the 25th is already the 26th in UTC+3.
	anchor := time.Date(2024, time.May, 25, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-26", b.Day(anchor, nil, nil).Anchor)
}
