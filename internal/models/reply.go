package models

import "time"

type Reply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"not null"`
	Author    string    `json:"author" gorm:"not null;index"`
	ThreadID  uint      `json:"threadId" gorm:"not null;index"`
	Thread    *Thread   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
