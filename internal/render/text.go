package render

import (
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/domain"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sapphire = lipgloss.Color("#74c7ec")
	subtext  = lipgloss.Color("#a6adc8")
	peach    = lipgloss.Color("#fab387")
	green    = lipgloss.Color("#a6e3a1")
	surface  = lipgloss.Color("#45475a")

	titleStyle  = lipgloss.NewStyle().Foreground(sapphire).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(subtext)
	todayStyle  = lipgloss.NewStyle().Foreground(peach).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(green)
	paneStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(surface).
			Padding(0, 1)
)

const cellWidth = 16

// TextRenderer writes snapshots to a terminal.
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(s Snapshot) {
	fmt.Fprintln(r.w, Grid(s.Grid))
	if len(s.Clients) > 0 || s.ClientFilter.SearchTerm != "" {
		fmt.Fprintln(r.w, Clients(s.Clients))
	}
}

// Grid draws any granularity of calendar grid.
func Grid(g calendar.Grid) string {
	var body string
	switch g.Granularity {
	case domain.GranularityWeek:
		body = weekBody(g)
	case domain.GranularityDay:
		body = dayBody(g)
	default:
		body = monthBody(g)
	}
	return paneStyle.Render(titleStyle.Render(g.Title) + "\n\n" + body)
}

func monthBody(g calendar.Grid) string {
	var b strings.Builder
	for _, col := range g.Columns {
		b.WriteString(mutedStyle.Render(pad(col.Weekday, cellWidth)))
	}
	b.WriteString("\n")
	for _, row := range g.Rows {
		lines := 1
		for _, cell := range row {
			n := 1 + len(cell.Visible)
			if cell.Overflow > 0 {
				n++
			}
			lines = max(lines, n)
		}
		for line := 0; line < lines; line++ {
			for _, cell := range row {
				b.WriteString(monthCellLine(cell, line))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func monthCellLine(cell calendar.Cell, line int) string {
	switch {
	case line == 0:
		text := pad(fmt.Sprintf("%2d", cell.Day), cellWidth)
		if cell.IsToday {
			return todayStyle.Render(text)
		}
		if !cell.IsCurrentPeriod {
			return mutedStyle.Render(text)
		}
		return text
	case line-1 < len(cell.Visible):
		e := cell.Visible[line-1]
		return pad(e.Time+" "+e.ClientName, cellWidth)
	case line-1 == len(cell.Visible) && cell.Overflow > 0:
		return mutedStyle.Render(pad(fmt.Sprintf("+%d more", cell.Overflow), cellWidth))
	default:
		return pad("", cellWidth)
	}
}

func weekBody(g calendar.Grid) string {
	var b strings.Builder
	b.WriteString(pad("", 7))
	for _, col := range g.Columns {
		header := pad(fmt.Sprintf("%s %d", col.Weekday, col.Day), cellWidth)
		if col.IsToday {
			header = todayStyle.Render(header)
		}
		b.WriteString(header)
	}
	b.WriteString("\n")
	for i, row := range g.Rows {
		b.WriteString(mutedStyle.Render(pad(g.RowLabels[i], 7)))
		for _, cell := range row {
			text := ""
			if len(cell.Workouts) > 0 {
				text = cell.Workouts[0].ClientName
				if cell.Conflict {
					text = fmt.Sprintf("%s +%d", text, len(cell.Workouts)-1)
				}
			}
			b.WriteString(pad(text, cellWidth))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func dayBody(g calendar.Grid) string {
	cells := g.Cells()
	if len(cells) == 0 || len(cells[0].Workouts) == 0 {
		return mutedStyle.Render("No workouts scheduled")
	}
	var b strings.Builder
	for _, e := range cells[0].Workouts {
		fmt.Fprintf(&b, "%s  %-20s %-11s %3d min  %s\n", e.Time, e.ClientName, e.Type, e.DurationMinutes, statusText(e.Status))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Clients draws the client list as cards, one per line.
func Clients(clients []domain.Client) string {
	if len(clients) == 0 {
		return mutedStyle.Render("No clients found")
	}
	var b strings.Builder
	for _, c := range clients {
		status := mutedStyle.Render("inactive")
		if c.IsActive {
			status = activeStyle.Render("active")
		}
		next := c.NextWorkoutDate
		if next == "" {
			next = "-"
		}
		fmt.Fprintf(&b, "[%-2s] %-20s %-24s %3d%%  next: %-10s  %s\n", c.Avatar, c.Name, c.Goal, c.ProgressPercent, next, status)
	}
	return paneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Table draws rows under a bold header, columns padded to their widest value.
func Table(title string, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, v := range row {
			if i < len(widths) && len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title) + "\n\n")
	}
	for i, h := range headers {
		b.WriteString(mutedStyle.Render(pad(h, widths[i]+2)))
	}
	for _, row := range rows {
		b.WriteString("\n")
		for i, v := range row {
			if i < len(widths) {
				b.WriteString(pad(v, widths[i]+2))
			}
		}
	}
	return paneStyle.Render(b.String())
}

func statusText(s domain.WorkoutStatus) string {
	switch s {
	case domain.StatusScheduled:
		return "Scheduled"
	case domain.StatusInProgress:
		return "In progress"
	case domain.StatusCompleted:
		return "Completed"
	case domain.StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		if width > 1 {
			return string(r[:width-1]) + " "
		}
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
