package database

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shelter_backend/internal/auth"
	"shelter_backend/internal/config"
	"shelter_backend/internal/logger"
	"shelter_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens the GORM connection described in the config.
// TranslateError is required so unique-index violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "postgres", "":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema and seeds the fixed rows.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.UserRole{},
		&models.User{},
		&models.Animal{},
		&models.Adoption{},
		&models.Image{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedFirstAdmin(db); err != nil {
		return err
	}

	logger.Info("database migration completed")
	return nil
}

// seedRoles makes sure the three fixed roles exist with their well-known IDs.
func seedRoles(db *gorm.DB) error {
	roles := []models.UserRole{
		{ID: models.RoleAdmin, Name: "admin", Description: "Full access to animals and adoptions"},
		{ID: models.RoleModerator, Name: "moderator", Description: "Edits animals and processes adoptions"},
		{ID: models.RoleUser, Name: "user", Description: "Browses animals and applies for adoption"},
	}
	for _, role := range roles {
		var count int64
		if err := db.Model(&models.UserRole{}).Where("id = ?", role.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}
		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("seed roles: %w", err)
			}
		}
	}
	return nil
}

// seedFirstAdmin creates the bootstrap admin account when no admin exists
// and the credentials are configured.
func seedFirstAdmin(db *gorm.DB) error {
	cfg := config.GetConfig()
	if cfg.Seed.AdminLogin == "" || cfg.Seed.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role_id = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	admin := &models.User{
		Login:        cfg.Seed.AdminLogin,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "Shelter",
		RoleID:       models.RoleAdmin,
	}
	if err := db.WithContext(context.Background()).Create(admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info("seeded first admin", "login", admin.Login)
	return nil
}
