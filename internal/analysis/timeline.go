package analysis

import (
	"fmt"
	"time"
)

// MonthlyPoint is the message count of one calendar month.
type MonthlyPoint struct {
	Year     int    `json:"year"`
	MonthNum int    `json:"month_num"`
	Month    string `json:"month"`
	Label    string `json:"label"`
	Messages int    `json:"messages"`
}

// DailyPoint is the message count of one calendar date.
type DailyPoint struct {
	Date     time.Time `json:"date"`
	Messages int       `json:"messages"`
}

// MonthlyTimeline groups the selection by (year, month) in chronological order.
func (e *Engine) MonthlyTimeline(user string) []MonthlyPoint {
	var points []MonthlyPoint
	index := make(map[[2]int]int)

	for _, r := range sortedByTime(e.selectRecords(user)) {
		key := [2]int{r.Year, r.MonthNum}
		i, ok := index[key]
		if !ok {
			i = len(points)
			index[key] = i
			points = append(points, MonthlyPoint{
				Year:     r.Year,
				MonthNum: r.MonthNum,
				Month:    r.Month,
				Label:    fmt.Sprintf("%s-%d", r.Month, r.Year),
			})
		}
		points[i].Messages++
	}
	return points
}

// DailyTimeline groups the selection by calendar date in chronological order.
func (e *Engine) DailyTimeline(user string) []DailyPoint {
	var points []DailyPoint
	index := make(map[time.Time]int)

	for _, r := range sortedByTime(e.selectRecords(user)) {
		i, ok := index[r.DateOnly]
		if !ok {
			i = len(points)
			index[r.DateOnly] = i
			points = append(points, DailyPoint{Date: r.DateOnly})
		}
		points[i].Messages++
	}
	return points
}
