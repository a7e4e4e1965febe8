package services

import (
	"errors"
	"strings"

	"github.com/nebulavault/server/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 6

// Accounts handles registration, credential verification, and
// self-service password changes.
type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

// Register creates a member account with a bcrypt-hashed password.
// Returns ErrDuplicateUser when the username is taken; the user table
// is left unchanged in that case.
func (s *Accounts) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationErr("username", "must not be empty")
	}
	if len(password) < MinPasswordLength {
		return nil, validationErr("password", "must be at least 6 characters")
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, Password: string(hash), Role: models.RoleMember}
	if err := s.db.Create(&user).Error; err != nil {
		// Unique index backstop for a race between the check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies the supplied credentials. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials so the response does
// not reveal which accounts exist.
func (s *Accounts) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ChangePassword re-hashes and overwrites the identity's password.
func (s *Accounts) ChangePassword(identity, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return validationErr("password", "passwords do not match")
	}
	if len(newPassword) < MinPasswordLength {
		return validationErr("password", "must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res := s.db.Model(&models.User{}).Where("username = ?", identity).Update("password", string(hash))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByUsername returns the user record for a session identity.
func (s *Accounts) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Stats holds the dashboard counters.
type Stats struct {
	Users    int64 `json:"users"`
	Threads  int64 `json:"threads"`
	Replies  int64 `json:"replies"`
	Machines int64 `json:"machines"`
}

// Stats returns aggregate record counts for the dashboard.
func (s *Accounts) Stats() (*Stats, error) {
	var st Stats
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &st.Users},
		{&models.Thread{}, &st.Threads},
		{&models.Reply{}, &st.Replies},
		{&models.Machine{}, &st.Machines},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &st, nil
}
