package model

import "time"

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

// StudentClass groups students within a school (e.g. "SS3 Science") and is
// what courses target for bulk registration.
type StudentClass struct {
	BaseModel
	SchoolID uint   `gorm:"index;uniqueIndex:idx_class_identity;not null" json:"schoolId"`
	Name     string `gorm:"size:100;uniqueIndex:idx_class_identity;not null" json:"name"`
	Group    string `gorm:"size:100" json:"group"`
}

func (StudentClass) TableName() string {
	return "student_classes"
}

// User covers students and administrators. For students the username is the
// exam number printed on their access slip.
type User struct {
	BaseModel
	SchoolID  uint          `gorm:"index;not null" json:"schoolId"`
	School    *School       `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Username  string        `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password  string        `gorm:"size:100;not null" json:"-"`
	FirstName string        `gorm:"size:150" json:"firstName"`
	LastName  string        `gorm:"size:150" json:"lastName"`
	Email     string        `gorm:"size:100" json:"email"`
	Role      UserRole      `gorm:"type:enum('student','admin','superadmin');default:'student'" json:"role"`
	ClassID   *uint         `gorm:"index" json:"classId,omitempty"`
	Class     *StudentClass `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	IsActive  bool          `gorm:"default:true" json:"isActive"`
	LastLogin time.Time     `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
