package seeders

import (
	"log"
	"os"

	"survey-booking/constants"
	"survey-booking/models/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser creates the default admin account if no admin exists yet.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; the seeder is a no-op
// when either is unset.
func SeedAdminUser(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Printf("🔍 ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seeder")
		return
	}

	var count int64
	if err := db.Model(&user.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to check for existing admin: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	admin := user.User{
		Uuid:          uuid.NewString(),
		Name:          "Administrator",
		Email:         email,
		EmailVerified: true,
		PasswordHash:  string(hash),
		Permissions:   user.StringSlice{constants.PermAdminFull},
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ Failed to seed admin user: %v", err)
		return
	}
	log.Printf("✅ Seeded default admin user %s", email)
}
