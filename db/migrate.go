package db

import (
	"errors"
	"fmt"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates every table.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.Role{},
		&models.Account{},
		&models.CustomerProfile{},
		&models.ProfessionalProfile{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	utils.Log.Info("migrations applied")
	return nil
}

// SeedRoles inserts the built-in roles if they are missing.
func SeedRoles(conn *gorm.DB) error {
	for _, role := range models.DefaultRoles() {
		r := role
		if err := conn.Where("name = ?", r.Name).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
	}
	return nil
}

// SeedAdmin creates the administrator account once. It is a no-op when the
// password is empty or the email is already taken.
func SeedAdmin(conn *gorm.DB, hasher utils.PasswordHasher, email, password string) error {
	if email == "" || password == "" {
		utils.Log.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		var existing models.Account
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var role models.Role
		if err := tx.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
			return fmt.Errorf("admin role missing: %w", err)
		}

		hashed, err := hasher.Hash(password)
		if err != nil {
			return err
		}
		admin := models.Account{
			Email:    email,
			Password: hashed,
			Active:   true,
			Roles:    []models.Role{role},
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		utils.Log.WithField("email", email).Info("admin account created")
		return nil
	})
}
