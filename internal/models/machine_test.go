package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDifficulty(t *testing.T) {
	for _, d := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane} {
		assert.True(t, ValidDifficulty(d), d)
	}
	assert.False(t, ValidDifficulty(""))
	assert.False(t, ValidDifficulty("easy"), "values are case sensitive")
	assert.False(t, ValidDifficulty("Impossible"))
}

func TestValidOS(t *testing.T) {
	assert.True(t, ValidOS(OSLinux))
	assert.True(t, ValidOS(OSWindows))
	assert.False(t, ValidOS(""))
	assert.False(t, ValidOS("macOS"))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusRetired))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Archived"))
}
