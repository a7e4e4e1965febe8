package models

import "time"

// Thread is a forum topic. Author is the username that created it,
// stored denormalized; ownership checks compare it against the
// session identity.
type Thread struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	Author    string    `json:"author" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ThreadSummary is a thread annotated with its live reply count,
// as returned by the thread listing.
type ThreadSummary struct {
	Thread     `gorm:"embedded"`
	ReplyCount int64 `json:"replyCount"`
}
