package models

import "time"

// User roles. Machine catalog mutation is restricted to RoleAdmin;
// registration always assigns RoleMember.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash
	Role      string    `json:"role" gorm:"not null;default:member"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
