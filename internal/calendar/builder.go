// Package calendar turns an anchor date, a granularity and the workout
// collection into a renderable grid of date cells.
package calendar

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"sort"
	"strconv"
	"time"
)

const (
	MonthRows    = 6
	MonthColumns = 7
	MonthCells   = MonthRows * MonthColumns

	DefaultFirstHour          = 8
	DefaultLastHour           = 21
	DefaultMonthOverflowCap   = 3
	DefaultUnknownClientLabel = "Unknown client"
)

// Directory resolves client ids to display names.
type Directory interface {
	ClientName(id int64) (string, bool)
}

// DirectoryFunc adapts a function to Directory.
type DirectoryFunc func(id int64) (string, bool)

func (f DirectoryFunc) ClientName(id int64) (string, bool) { return f(id) }

// Entry is a workout as shown inside a cell.
type Entry struct {
	domain.Workout
	ClientName string `json:"clientName"`
}

// Cell is one date (or date + hourly slot) unit of the grid.
type Cell struct {
	Date            string  `json:"date"`
	Day             int     `json:"day"`
	Slot            string  `json:"slot,omitempty"` // "08:00" in the week view
	IsCurrentPeriod bool    `json:"isCurrentPeriod"`
	IsToday         bool    `json:"isToday"`
	Workouts        []Entry `json:"workouts"`
	Visible         []Entry `json:"visible"`
	Overflow        int     `json:"overflow"` // "+N more" in the month view
	Conflict        bool    `json:"conflict"` // more than one booking in a week slot
}

// Column describes one day header of the grid.
type Column struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Day     int    `json:"day"`
	IsToday bool   `json:"isToday"`
}

// Grid is the full calendar view. Month views are 6x7, week views 14x7
// (one row per hourly slot), day views 1x1.
type Grid struct {
	Granularity domain.Granularity `json:"granularity"`
	Anchor      string             `json:"anchor"`
	Title       string             `json:"title"`
	Start       string             `json:"start"`
	End         string             `json:"end"`
	Columns     []Column           `json:"columns"`
	RowLabels   []string           `json:"rowLabels,omitempty"`
	Rows        [][]Cell           `json:"rows"`
}

// Cells flattens the grid row by row.
func (g Grid) Cells() []Cell {
	var out []Cell
	for _, row := range g.Rows {
		out = append(out, row...)
	}
	return out
}

// Options tune the builder; zero fields fall back to defaults.
type Options struct {
	FirstHour          int
	LastHour           int
	MonthOverflowCap   int
	UnknownClientLabel string
	Location           *time.Location
	Now                func() time.Time
}

// Builder produces grids. It holds no state between builds.
type Builder struct {
	opts Options
}

// NewBuilder creates a builder, filling unset options with defaults.
func NewBuilder(opts Options) *Builder {
	if opts.FirstHour <= 0 && opts.LastHour <= 0 {
		opts.FirstHour, opts.LastHour = DefaultFirstHour, DefaultLastHour
	}
	if opts.LastHour < opts.FirstHour || opts.LastHour > 23 {
		opts.LastHour = DefaultLastHour
	}
	if opts.MonthOverflowCap <= 0 {
		opts.MonthOverflowCap = DefaultMonthOverflowCap
	}
	if opts.UnknownClientLabel == "" {
		opts.UnknownClientLabel = DefaultUnknownClientLabel
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{opts: opts}
}

// Location is the zone all dates are interpreted in.
func (b *Builder) Location() *time.Location { return b.opts.Location }

// Today is midnight of the current day in the builder's location.
func (b *Builder) Today() time.Time {
	return domain.StartOfDay(b.opts.Now().In(b.opts.Location))
}

// Slots returns the labels of the hourly week-view slots.
func (b *Builder) Slots() []string {
	labels := make([]string, 0, b.opts.LastHour-b.opts.FirstHour+1)
	for h := b.opts.FirstHour; h <= b.opts.LastHour; h++ {
		labels = append(labels, slotLabel(h))
	}
	return labels
}

// Build dispatches on granularity; unknown values render the month view.
func (b *Builder) Build(anchor time.Time, g domain.Granularity, workouts []domain.Workout, dir Directory) Grid {
	switch g {
	case domain.GranularityWeek:
		return b.Week(anchor, workouts, dir)
	case domain.GranularityDay:
		return b.Day(anchor, workouts, dir)
	default:
		return b.Month(anchor, workouts, dir)
	}
}

// Month builds the fixed 42-cell month grid, Monday first.
func (b *Builder) Month(anchor time.Time, workouts []domain.Workout, dir Directory) Grid {
	anchor = b.normalize(anchor)
	byDate := b.index(workouts, dir)
	today := domain.FormatDate(b.Today())
	start, end := PeriodBounds(anchor, domain.GranularityMonth)

	grid := b.newGrid(anchor, domain.GranularityMonth, start, end)
	grid.Columns = b.columns(start, today)
	grid.Rows = make([][]Cell, MonthRows)
	for r := 0; r < MonthRows; r++ {
		row := make([]Cell, MonthColumns)
		for c := 0; c < MonthColumns; c++ {
			day := start.AddDate(0, 0, r*MonthColumns+c)
			cell := b.newCell(day, today, byDate[domain.FormatDate(day)])
			cell.IsCurrentPeriod = day.Month() == anchor.Month() && day.Year() == anchor.Year()
			if len(cell.Workouts) > b.opts.MonthOverflowCap {
				cell.Visible = cell.Workouts[:b.opts.MonthOverflowCap]
				cell.Overflow = len(cell.Workouts) - b.opts.MonthOverflowCap
			}
			row[c] = cell
		}
		grid.Rows[r] = row
	}
	return grid
}

// Week builds hourly slot rows for the seven days of the anchor's week.
// A slot holds every workout starting within its hour.
func (b *Builder) Week(anchor time.Time, workouts []domain.Workout, dir Directory) Grid {
	anchor = b.normalize(anchor)
	byDate := b.index(workouts, dir)
	today := domain.FormatDate(b.Today())
	start, end := PeriodBounds(anchor, domain.GranularityWeek)

	grid := b.newGrid(anchor, domain.GranularityWeek, start, end)
	grid.Columns = b.columns(start, today)
	grid.RowLabels = b.Slots()
	for h := b.opts.FirstHour; h <= b.opts.LastHour; h++ {
		row := make([]Cell, MonthColumns)
		for c := 0; c < MonthColumns; c++ {
			day := start.AddDate(0, 0, c)
			var inSlot []Entry
			for _, e := range byDate[domain.FormatDate(day)] {
				if hourOf(e.Time) == h {
					inSlot = append(inSlot, e)
				}
			}
			cell := b.newCell(day, today, inSlot)
			cell.Slot = slotLabel(h)
			cell.IsCurrentPeriod = true
			cell.Conflict = len(inSlot) > 1
			row[c] = cell
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// Day builds a single cell with every workout of the anchor date, time ascending.
func (b *Builder) Day(anchor time.Time, workouts []domain.Workout, dir Directory) Grid {
	anchor = b.normalize(anchor)
	byDate := b.index(workouts, dir)
	today := domain.FormatDate(b.Today())

	grid := b.newGrid(anchor, domain.GranularityDay, anchor, anchor)
	grid.Columns = []Column{column(anchor, today)}
	cell := b.newCell(anchor, today, byDate[domain.FormatDate(anchor)])
	cell.IsCurrentPeriod = true
	grid.Rows = [][]Cell{{cell}}
	return grid
}

func (b *Builder) normalize(t time.Time) time.Time {
	return domain.StartOfDay(t.In(b.opts.Location))
}

func (b *Builder) newGrid(anchor time.Time, g domain.Granularity, start, end time.Time) Grid {
	return Grid{
		Granularity: g,
		Anchor:      domain.FormatDate(anchor),
		Title:       Title(anchor, g),
		Start:       domain.FormatDate(start),
		End:         domain.FormatDate(end),
	}
}

func (b *Builder) newCell(day time.Time, today string, entries []Entry) Cell {
	date := domain.FormatDate(day)
	if entries == nil {
		entries = []Entry{}
	}
	return Cell{
		Date:     date,
		Day:      day.Day(),
		IsToday:  date == today,
		Workouts: entries,
		Visible:  entries,
	}
}

func (b *Builder) columns(start time.Time, today string) []Column {
	cols := make([]Column, MonthColumns)
	for i := range cols {
		cols[i] = column(start.AddDate(0, 0, i), today)
	}
	return cols
}

func column(day time.Time, today string) Column {
	date := domain.FormatDate(day)
	return Column{Date: date, Weekday: day.Format("Mon"), Day: day.Day(), IsToday: date == today}
}

// index groups workouts by date with entries ordered by time, then id.
func (b *Builder) index(workouts []domain.Workout, dir Directory) map[string][]Entry {
	sorted := append([]domain.Workout(nil), workouts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	byDate := make(map[string][]Entry)
	for _, w := range sorted {
		byDate[w.Date] = append(byDate[w.Date], Entry{Workout: w, ClientName: b.clientName(dir, w.ClientID)})
	}
	return byDate
}

func (b *Builder) clientName(dir Directory, id int64) string {
	if dir != nil {
		if name, ok := dir.ClientName(id); ok {
			return name
		}
	}
	return b.opts.UnknownClientLabel
}

func slotLabel(hour int) string {
	if hour < 10 {
		return "0" + strconv.Itoa(hour) + ":00"
	}
	return strconv.Itoa(hour) + ":00"
}

// hourOf reads the hour of an "HH:MM" time; -1 when unparsable.
func hourOf(clock string) int {
	if len(clock) < 2 {
		return -1
	}
	h, err := strconv.Atoi(clock[:2])
	if err != nil {
		return -1
	}
	return h
}
