package services

import (
	"errors"
	"strings"

	"github.com/nebulavault/server/internal/models"
	"gorm.io/gorm"
)

// Catalog handles machine records. Reads are open to any authenticated
// user; every mutation passes CanMutateCatalog.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// MachineInput carries the writable machine fields. IP is optional and
// stored as NULL when blank.
type MachineInput struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	OS         string `json:"os"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
}

func (in *MachineInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.IP = strings.TrimSpace(in.IP)
	if in.Name == "" {
		return validationErr("name", "must not be empty")
	}
	if !models.ValidDifficulty(in.Difficulty) {
		return validationErr("difficulty", "must be Easy, Medium, Hard, or Insane")
	}
	if !models.ValidOS(in.OS) {
		return validationErr("os", "must be Linux or Windows")
	}
	if !models.ValidStatus(in.Status) {
		return validationErr("status", "must be Active or Retired")
	}
	return nil
}

func (in *MachineInput) ip() *string {
	if in.IP == "" {
		return nil
	}
	return &in.IP
}

// ListMachines returns all records ordered by name.
func (s *Catalog) ListMachines() ([]models.Machine, error) {
	var machines []models.Machine
	if err := s.db.Order("name ASC").Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

// CreateMachine inserts a catalog record. Admin only.
func (s *Catalog) CreateMachine(actor *models.User, in MachineInput) (*models.Machine, error) {
	if !CanMutateCatalog(actor) {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	machine := models.Machine{
		Name:       in.Name,
		Difficulty: in.Difficulty,
		OS:         in.OS,
		IP:         in.ip(),
		Status:     in.Status,
	}
	if err := s.db.Create(&machine).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

// UpdateMachine overwrites all writable fields of an existing record.
// Admin only; ErrNotFound when the id does not exist.
func (s *Catalog) UpdateMachine(actor *models.User, id uint, in MachineInput) (*models.Machine, error) {
	if !CanMutateCatalog(actor) {
		return nil, ErrForbidden
	}

	var machine models.Machine
	if err := s.db.First(&machine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":       in.Name,
		"difficulty": in.Difficulty,
		"os":         in.OS,
		"ip":         in.ip(),
		"status":     in.Status,
	}
	if err := s.db.Model(&machine).Updates(updates).Error; err != nil {
		return nil, err
	}

	machine.Name = in.Name
	machine.Difficulty = in.Difficulty
	machine.OS = in.OS
	machine.IP = in.ip()
	machine.Status = in.Status
	return &machine, nil
}

// DeleteMachine removes a record. Admin only; deleting a missing id is
// ErrNotFound, matching thread and reply deletion.
func (s *Catalog) DeleteMachine(actor *models.User, id uint) error {
	if !CanMutateCatalog(actor) {
		return ErrForbidden
	}

	res := s.db.Delete(&models.Machine{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
