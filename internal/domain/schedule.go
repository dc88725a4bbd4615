package domain

import (
	"sort"
	"strings"
)

// Schedule is one weekly meeting of a course in a semester.
// Times are server local times, "15:04" or "15:04:05".
type Schedule struct {
	ID         int64  `json:"id,omitempty"`
	CourseCode string `json:"courseCode"`
	DayOfWeek  string `json:"dayOfWeek"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Room       string `json:"room"`
	Semester   string `json:"semester"`
}

var weekdays = map[string]int{
	"MONDAY":    1,
	"TUESDAY":   2,
	"WEDNESDAY": 3,
	"THURSDAY":  4,
	"FRIDAY":    5,
	"SATURDAY":  6,
	"SUNDAY":    7,
}

// DayIndex is 1 for Monday through 7 for Sunday, 8 for anything unknown.
func (s Schedule) DayIndex() int {
	if i, ok := weekdays[strings.ToUpper(strings.TrimSpace(s.DayOfWeek))]; ok {
		return i
	}
	return 8
}

// Slot renders "MONDAY 09:00-10:30".
func (s Schedule) Slot() string {
	return strings.ToUpper(s.DayOfWeek) + " " + clock(s.StartTime) + "-" + clock(s.EndTime)
}

// Times returns start and end trimmed to "15:04".
func (s Schedule) Times() (start, end string) {
	return clock(s.StartTime), clock(s.EndTime)
}

func clock(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}

// SortSchedules orders by weekday, then start time, then course code.
func SortSchedules(in []Schedule) {
	sort.SliceStable(in, func(i, j int) bool {
		a, b := in[i], in[j]
		if a.DayIndex() != b.DayIndex() {
			return a.DayIndex() < b.DayIndex()
		}
		if clock(a.StartTime) != clock(b.StartTime) {
			return clock(a.StartTime) < clock(b.StartTime)
		}
		return a.CourseCode < b.CourseCode
	})
}
