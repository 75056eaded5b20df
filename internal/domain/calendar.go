package domain

// Granularity is the calendar display mode.
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
	GranularityDay   Granularity = "day"
)

func (g Granularity) Valid() bool {
	return g == GranularityMonth || g == GranularityWeek || g == GranularityDay
}
