package models

import "time"

// Machine difficulty values.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
	DifficultyInsane = "Insane"
)

// Machine operating systems.
const (
	OSLinux   = "Linux"
	OSWindows = "Windows"
)

// Machine statuses.
const (
	StatusActive  = "Active"
	StatusRetired = "Retired"
)

// Machine is a lab-machine catalog record. Unrelated to the forum
// entities; any authenticated user may read, only admins may mutate.
type Machine struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null;index"`
	Difficulty string    `json:"difficulty" gorm:"not null"`
	OS         string    `json:"os" gorm:"not null"`
	IP         *string   `json:"ip"` // nullable, no format validation
	Status     string    `json:"status" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ValidDifficulty reports whether d is one of the known difficulty values.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane:
		return true
	}
	return false
}

// ValidOS reports whether os is one of the known operating systems.
func ValidOS(os string) bool {
	return os == OSLinux || os == OSWindows
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusRetired
}
