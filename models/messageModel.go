package models

import (
	"time"
)

// Message model. Inter-department note attached to a visit, addressed either
// to a specific user or to a whole role.
type Message struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	FromUserID string    `gorm:"column:from_user_id;not null;index" json:"from_user_id"`
	ToUserID   string    `gorm:"column:to_user_id;index" json:"to_user_id"`
	ToRole     string    `gorm:"column:to_role;index" json:"to_role"`
	VisitID    string    `gorm:"column:visit_id;not null;index" json:"visit_id"`
	Subject    string    `gorm:"column:subject;not null" json:"subject"`
	Body       string    `gorm:"column:body;not null" json:"body"`
	IsRead     bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	FromUser   *User     `gorm:"foreignKey:FromUserID;references:ID" json:"from_user,omitempty"`
	ToUser     *User     `gorm:"foreignKey:ToUserID;references:ID" json:"to_user,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
