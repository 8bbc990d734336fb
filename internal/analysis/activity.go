package analysis

import (
	"sort"
	"time"
)

// WeekActivity counts messages per weekday name, busiest first.
func (e *Engine) WeekActivity(user string) []KeyCount {
	c := newCounter()
	for _, r := range e.selectRecords(user) {
		c.add(r.DayName)
	}
	return c.keyCounts()
}

// MonthActivity counts messages per month name, busiest first.
func (e *Engine) MonthActivity(user string) []KeyCount {
	c := newCounter()
	for _, r := range e.selectRecords(user) {
		c.add(r.Month)
	}
	return c.keyCounts()
}

// Heatmap is a weekday × hour-period table of message counts.
// Cells[i][j] is the count for Rows[i] and Columns[j].
type Heatmap struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Cells   [][]int  `json:"cells"`
}

// IsEmpty reports whether the table has no rows or no columns.
func (h Heatmap) IsEmpty() bool {
	return len(h.Rows) == 0 || len(h.Columns) == 0
}

// Value returns the count for a weekday and period, zero when absent.
func (h Heatmap) Value(day, period string) int {
	for i, row := range h.Rows {
		if row != day {
			continue
		}
		for j, col := range h.Columns {
			if col == period {
				return h.Cells[i][j]
			}
		}
	}
	return 0
}

// ActivityHeatmap pivots the selection into weekday rows (Monday first) and
// hour-period columns (ordered by hour). Only observed weekdays and periods
// appear; missing combinations are zero. An empty selection returns an
// empty Heatmap.
func (e *Engine) ActivityHeatmap(user string) Heatmap {
	records := e.selectRecords(user)
	if len(records) == 0 {
		return Heatmap{}
	}

	type cell struct {
		day  time.Weekday
		hour int
	}
	counts := make(map[cell]int)
	days := make(map[time.Weekday]string)
	hours := make(map[int]string)
	for _, r := range records {
		wd := r.Timestamp.Weekday()
		counts[cell{day: wd, hour: r.Hour}]++
		days[wd] = r.DayName
		hours[r.Hour] = r.Period
	}

	dayOrder := make([]time.Weekday, 0, len(days))
	for wd := range days {
		dayOrder = append(dayOrder, wd)
	}
	sort.Slice(dayOrder, func(i, j int) bool {
		return mondayFirst(dayOrder[i]) < mondayFirst(dayOrder[j])
	})

	hourOrder := make([]int, 0, len(hours))
	for h := range hours {
		hourOrder = append(hourOrder, h)
	}
	sort.Ints(hourOrder)

	h := Heatmap{
		Rows:    make([]string, len(dayOrder)),
		Columns: make([]string, len(hourOrder)),
		Cells:   make([][]int, len(dayOrder)),
	}
	for j, hr := range hourOrder {
		h.Columns[j] = hours[hr]
	}
	for i, wd := range dayOrder {
		h.Rows[i] = days[wd]
		h.Cells[i] = make([]int, len(hourOrder))
		for j, hr := range hourOrder {
			h.Cells[i][j] = counts[cell{day: wd, hour: hr}]
		}
	}
	return h
}

func mondayFirst(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
