package service

import (
	"errors"
	"testing"
	"time"

	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/util"
)

func TestSessionWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	officialEnd := start.Add(time.Hour)
	exam := &model.Exam{StartDatetime: &start, DurationMinutes: 60}

	tests := []struct {
		name    string
		exam    *model.Exam
		now     time.Time
		wantEnd time.Time
		wantErr error
	}{
		{name: "on time", exam: exam, now: start, wantEnd: officialEnd},
		// a student arriving 5 minutes late still gets the 11:00 deadline,
		// not 11:05
		{name: "late arrival keeps shared deadline", exam: exam, now: start.Add(5 * time.Minute), wantEnd: officialEnd},
		{name: "last second of the window", exam: exam, now: officialEnd, wantEnd: officialEnd},
		{name: "too early", exam: exam, now: start.Add(-time.Minute), wantErr: util.ErrExamNotOpen},
		{name: "window closed", exam: exam, now: officialEnd.Add(time.Second), wantErr: util.ErrExamClosed},
		{name: "unscheduled exam", exam: &model.Exam{DurationMinutes: 60}, now: start, wantErr: util.ErrStartNotConfigured},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := sessionWindow(tt.exam, tt.now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("sessionWindow() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !end.Equal(tt.wantEnd) {
				t.Errorf("sessionWindow() end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}
