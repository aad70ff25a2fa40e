package model

import "testing"

func TestQuestionKindGrade(t *testing.T) {
	tests := []struct {
		name      string
		kind      QuestionKind
		submitted string
		correct   string
		want      bool
	}{
		{name: "objective exact", kind: KindObjective, submitted: "B", correct: "B", want: true},
		{name: "objective case insensitive", kind: KindObjective, submitted: "b", correct: "B", want: true},
		{name: "objective wrong option", kind: KindObjective, submitted: "A", correct: "B", want: false},
		{name: "true/false lowercase", kind: KindTrueFalse, submitted: "true", correct: "True", want: true},
		{name: "fill in the gap padded", kind: KindFillGap, submitted: "  Paris ", correct: "paris", want: true},
		{name: "fill in the gap different word", kind: KindFillGap, submitted: "London", correct: "Paris", want: false},
		{name: "essay never auto-grades", kind: KindEssay, submitted: "same", correct: "same", want: false},
		{name: "unknown kind", kind: QuestionKind("bogus"), submitted: "x", correct: "x", want: false},
		{name: "empty submission", kind: KindObjective, submitted: "", correct: "B", want: false},
		{name: "whitespace only vs empty", kind: KindFillGap, submitted: "   ", correct: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Grade(tt.submitted, tt.correct); got != tt.want {
				t.Errorf("Grade(%q, %q) = %v, want %v", tt.submitted, tt.correct, got, tt.want)
			}
		})
	}
}

func TestQuestionKindAutoGradable(t *testing.T) {
	tests := []struct {
		kind QuestionKind
		want bool
	}{
		{KindObjective, true},
		{KindTrueFalse, true},
		{KindFillGap, true},
		{KindEssay, false},
		{QuestionKind(""), false},
	}
	for _, tt := range tests {
		if got := tt.kind.AutoGradable(); got != tt.want {
			t.Errorf("AutoGradable(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
