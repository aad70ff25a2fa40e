package model

import "strings"

// QuestionKind decides how an answer is graded. Objective, true/false and
// fill-in-the-gap questions grade on receipt; essays wait for a human.
type QuestionKind string

const (
	KindObjective QuestionKind = "obj"
	KindTrueFalse QuestionKind = "tf"
	KindFillGap   QuestionKind = "fitg"
	KindEssay     QuestionKind = "essay"
)

func (k QuestionKind) Valid() bool {
	switch k {
	case KindObjective, KindTrueFalse, KindFillGap, KindEssay:
		return true
	}
	return false
}

func (k QuestionKind) AutoGradable() bool {
	return k.Valid() && k != KindEssay
}

// Grade compares a submitted answer against the correct one for this kind.
// Matching is case-insensitive with surrounding whitespace ignored, so "b"
// matches a stored "B" and " Paris " matches "paris". Essays always return
// false; they are graded manually.
func (k QuestionKind) Grade(submitted, correct string) bool {
	if !k.AutoGradable() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}

type Question struct {
	BaseModel
	SchoolID       uint            `gorm:"index;not null" json:"schoolId"`
	ExamID         uint            `gorm:"uniqueIndex:idx_exam_question_number;not null" json:"examId"`
	QuestionNumber int             `gorm:"uniqueIndex:idx_exam_question_number;not null" json:"questionNumber"`
	Text           string          `gorm:"type:text;not null" json:"text"`
	Kind           QuestionKind    `gorm:"column:question_type;size:10;not null" json:"questionType"`
	OptionA        string          `gorm:"size:255" json:"optionA,omitempty"`
	OptionB        string          `gorm:"size:255" json:"optionB,omitempty"`
	OptionC        string          `gorm:"size:255" json:"optionC,omitempty"`
	OptionD        string          `gorm:"size:255" json:"optionD,omitempty"`
	Point          float64         `gorm:"default:1" json:"point"`
	CorrectAnswer  string          `gorm:"size:255" json:"-"`
	Images         []QuestionImage `gorm:"foreignKey:QuestionID" json:"images,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type QuestionImage struct {
	BaseModel
	SchoolID   uint   `gorm:"index;not null" json:"schoolId"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	ObjectKey  string `gorm:"size:255;not null" json:"-"`
	URL        string `gorm:"size:255" json:"url"`
	Caption    string `gorm:"size:255" json:"caption"`
}

func (QuestionImage) TableName() string {
	return "question_images"
}
