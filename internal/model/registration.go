package model

// CourseRegistration authorizes a student to sit exams under a course.
type CourseRegistration struct {
	BaseModel
	SchoolID uint    `gorm:"index;not null" json:"schoolId"`
	UserID   uint    `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID uint    `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (CourseRegistration) TableName() string {
	return "course_registrations"
}
