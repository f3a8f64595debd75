package models

import "time"

type User struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Email            string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"size:255;not null" json:"-"` // nunca se serializa
	Grade            string    `gorm:"size:50;not null" json:"grade"`
	EmergencyContact *string   `gorm:"size:50" json:"emergencyContact,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Alerts    []PanicAlert     `gorm:"foreignKey:UserID" json:"-"`
	Responses []SurveyResponse `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
