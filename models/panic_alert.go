package models

import "time"

type PanicAlert struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Latitude  float64   `gorm:"type:decimal(10,7);not null" json:"latitude"`
	Longitude float64   `gorm:"type:decimal(10,7);not null" json:"longitude"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (PanicAlert) TableName() string {
	return "panic_alerts"
}
