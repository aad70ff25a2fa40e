package model

import "time"

// School is the tenant boundary. Every other entity carries a SchoolID and
// queries are always filtered by it; a row from another school is
// indistinguishable from a missing row.
type School struct {
	BaseModel
	Name               string     `gorm:"size:255;not null" json:"name"`
	Code               string     `gorm:"size:20;uniqueIndex;not null" json:"code"`
	SchoolType         string     `gorm:"size:50" json:"schoolType"`
	Color              string     `gorm:"size:20" json:"color"`
	Icon               string     `gorm:"size:255" json:"icon"`
	IsActive           bool       `gorm:"default:true" json:"isActive"`
	SubscriptionEndsAt *time.Time `json:"subscriptionEndsAt,omitempty"`
}

func (School) TableName() string {
	return "schools"
}

// SubscriptionActive reports whether the school may be served at the given
// instant. A nil SubscriptionEndsAt means no expiry is configured.
func (s *School) SubscriptionActive(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	if s.SubscriptionEndsAt == nil {
		return true
	}
	return now.Before(*s.SubscriptionEndsAt)
}
