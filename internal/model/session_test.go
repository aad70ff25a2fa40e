package model

import (
	"testing"
	"time"
)

func TestExamSessionRemaining(t *testing.T) {
	end := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	session := &ExamSession{EndTime: end}

	tests := []struct {
		name string
		now  time.Time
		want int64
	}{
		{name: "one minute left", now: end.Add(-time.Minute), want: 60},
		{name: "at the deadline", now: end, want: 0},
		{name: "past the deadline clamps to zero", now: end.Add(10 * time.Minute), want: 0},
		{name: "sub-second remainder truncates", now: end.Add(-1500 * time.Millisecond), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := session.Remaining(tt.now); got != tt.want {
				t.Errorf("Remaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExamWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	exam := &Exam{StartDatetime: &start, DurationMinutes: 60}

	if end := exam.EndDatetime(); !end.Equal(start.Add(time.Hour)) {
		t.Errorf("EndDatetime() = %v, want %v", end, start.Add(time.Hour))
	}
	if exam.WindowContains(start.Add(-time.Second)) {
		t.Error("WindowContains() before start = true, want false")
	}
	if !exam.WindowContains(start) {
		t.Error("WindowContains() at start = false, want true")
	}
	if !exam.WindowContains(start.Add(time.Hour)) {
		t.Error("WindowContains() at end = false, want true")
	}
	if exam.WindowContains(start.Add(time.Hour + time.Second)) {
		t.Error("WindowContains() after end = true, want false")
	}

	unscheduled := &Exam{DurationMinutes: 60}
	if unscheduled.EndDatetime() != nil {
		t.Error("EndDatetime() on unscheduled exam should be nil")
	}
	if unscheduled.WindowContains(start) {
		t.Error("WindowContains() on unscheduled exam = true, want false")
	}
}
