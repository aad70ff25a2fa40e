package model

// Course is a named subject, optionally bound to a class. A student sees
// exams only for courses they are registered on.
type Course struct {
	BaseModel
	SchoolID uint          `gorm:"index;uniqueIndex:idx_course_identity;not null" json:"schoolId"`
	Name     string        `gorm:"size:255;uniqueIndex:idx_course_identity;not null" json:"name"`
	Code     string        `gorm:"size:20;uniqueIndex:idx_course_identity;not null" json:"code"`
	ClassID  *uint         `gorm:"uniqueIndex:idx_course_identity" json:"classId,omitempty"`
	Class    *StudentClass `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
