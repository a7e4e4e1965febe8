package repositories

import (
	"fmt"
	"log"

	"github.com/nebulavault/server/internal/config"
	"github.com/nebulavault/server/internal/models"
	"github.com/nebulavault/server/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glebarez/sqlite"
)

var DB *gorm.DB

// ConnectDatabase opens the store configured by DB_URL, migrates the
// schema, and bootstraps the admin account. Called once at startup.
func ConnectDatabase() {
	db, err := Open(config.Envs)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = db
	log.Println("Successfully connected to database")
}

// Open connects to Postgres when the DSN looks like one, otherwise
// treats DB_URL as a SQLite file path. Schema creation is idempotent.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.PostgresDSN() {
		dialector = postgres.Open(cfg.DBURL)
	} else {
		dialector = sqlite.Open(cfg.DBURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Bootstrap(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates any missing tables for the four entities.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Thread{},
		&models.Reply{},
		&models.Machine{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Bootstrap creates the initial admin account if absent and optionally
// seeds demo content into an empty forum and catalog.
func Bootstrap(db *gorm.DB, cfg config.Config) error {
	if err := ensureAdmin(db, cfg); err != nil {
		return err
	}
	if cfg.SeedDemo {
		if err := seedDemo(db); err != nil {
			return err
		}
	}
	return nil
}

// ensureAdmin creates the "admin" user on first run. The credential
// comes from ADMIN_PASSWORD; when unset, a random one-time password is
// generated and logged exactly once so it is never embedded in code.
func ensureAdmin(db *gorm.DB, cfg config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := cfg.AdminPassword
	generated := false
	if password == "" {
		var err error
		password, err = utils.GenerateSecureToken(24)
		if err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{Username: "admin", Password: string(hash), Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	if generated {
		log.Printf("Created admin account with one-time password: %s (rotate it via /profile)", password)
	} else {
		log.Println("Created admin account from ADMIN_PASSWORD")
	}
	return nil
}

func seedDemo(db *gorm.DB) error {
	var threads int64
	if err := db.Model(&models.Thread{}).Count(&threads).Error; err != nil {
		return err
	}
	if threads == 0 {
		demo := []models.Thread{
			{Title: "Welcome to Nebula Vault", Content: "Share security tips, lab notes, and writeups.", Author: "admin"},
			{Title: "Useful resources", Content: "Drop your favorite tools, cheat sheets, and labs here.", Author: "admin"},
		}
		if err := db.Create(&demo).Error; err != nil {
			return fmt.Errorf("seed threads: %w", err)
		}
	}

	var machines int64
	if err := db.Model(&models.Machine{}).Count(&machines).Error; err != nil {
		return err
	}
	if machines == 0 {
		ip := func(s string) *string { return &s }
		demo := []models.Machine{
			{Name: "Legacy", Difficulty: models.DifficultyEasy, OS: models.OSWindows, IP: ip("10.10.10.4"), Status: models.StatusRetired},
			{Name: "Active", Difficulty: models.DifficultyMedium, OS: models.OSWindows, IP: ip("10.10.10.100"), Status: models.StatusActive},
			{Name: "Jarvis", Difficulty: models.DifficultyHard, OS: models.OSLinux, IP: ip("10.10.10.143"), Status: models.StatusActive},
			{Name: "Netmon", Difficulty: models.DifficultyEasy, OS: models.OSLinux, IP: ip("10.10.10.152"), Status: models.StatusRetired},
			{Name: "Chatterbox", Difficulty: models.DifficultyMedium, OS: models.OSWindows, IP: ip("10.10.10.74"), Status: models.StatusActive},
			{Name: "Bastion", Difficulty: models.DifficultyHard, OS: models.OSWindows, IP: ip("10.10.10.134"), Status: models.StatusActive},
		}
		if err := db.Create(&demo).Error; err != nil {
			return fmt.Errorf("seed machines: %w", err)
		}
	}
	return nil
}
