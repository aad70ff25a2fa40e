package service

import (
	"testing"
	"time"

	"github.com/18d-shady/cbt-backend/internal/model"
)

func examAt(id uint, start time.Time, minutes int) model.Exam {
	e := model.Exam{StartDatetime: &start, DurationMinutes: minutes}
	e.ID = id
	return e
}

func TestPickExam(t *testing.T) {
	nine := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ten := nine.Add(time.Hour)
	noon := nine.Add(3 * time.Hour)

	tests := []struct {
		name         string
		exams        []model.Exam
		now          time.Time
		wantActive   uint
		wantUpcoming uint
	}{
		{
			name:       "inside a window",
			exams:      []model.Exam{examAt(1, nine, 60)},
			now:        nine.Add(30 * time.Minute),
			wantActive: 1,
		},
		{
			name:         "before the first window",
			exams:        []model.Exam{examAt(1, ten, 60), examAt(2, noon, 60)},
			now:          nine,
			wantUpcoming: 1,
		},
		{
			name:  "all windows passed",
			exams: []model.Exam{examAt(1, nine, 30)},
			now:   noon,
		},
		{
			// two overlapping windows: the earlier start wins, every time
			name:       "overlapping windows pick earliest",
			exams:      []model.Exam{examAt(1, nine, 180), examAt(2, ten, 60)},
			now:        ten.Add(10 * time.Minute),
			wantActive: 1,
		},
		{
			name:         "between windows reports the next one",
			exams:        []model.Exam{examAt(1, nine, 30), examAt(2, noon, 60)},
			now:          ten,
			wantUpcoming: 2,
		},
		{
			name:  "unscheduled exams are skipped",
			exams: []model.Exam{{DurationMinutes: 60}},
			now:   nine,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, upcoming := pickExam(tt.exams, tt.now)

			var gotActive, gotUpcoming uint
			if active != nil {
				gotActive = active.ID
			}
			if upcoming != nil {
				gotUpcoming = upcoming.ID
			}
			if gotActive != tt.wantActive {
				t.Errorf("active = %d, want %d", gotActive, tt.wantActive)
			}
			if gotUpcoming != tt.wantUpcoming {
				t.Errorf("upcoming = %d, want %d", gotUpcoming, tt.wantUpcoming)
			}
		})
	}
}
