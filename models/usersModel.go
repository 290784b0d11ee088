package models

import (
	"os"
	"time"

	"gorm.io/gorm"
)

// Staff roles. Department roles double as routing actors: a user may only
// move visits that currently sit at the location matching their role.
const (
	RoleAdmin     = "admin"
	RoleDoctor    = "doctor"
	RolePharmacy  = "pharmacy"
	RoleLab       = "lab"
	RoleFrontDesk = "frontdesk"
	RoleAccounts  = "accounts"
)

// AllRoles lists every role the system accepts.
func AllRoles() []string {
	return []string{RoleAdmin, RoleDoctor, RolePharmacy, RoleLab, RoleFrontDesk, RoleAccounts}
}

// ValidRole reports whether role is a known staff role.
func ValidRole(role string) bool {
	for _, r := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// User represents a staff member in the system
type User struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"size:100;not null;column:name" json:"name"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Role      string    `gorm:"size:20;not null;index;check:role IN ('admin', 'doctor', 'pharmacy', 'lab', 'frontdesk', 'accounts');column:role" json:"role"`
	IsOnline  bool      `gorm:"not null;default:false;column:is_online" json:"is_online"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// SeedAdminUser inserts the bootstrap admin account when no admin exists.
// The password must already be hashed by the caller.
func SeedAdminUser(db *gorm.DB, id, hashedPassword string) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@dreycare.local"
	}
	admin := User{
		ID:       id,
		Name:     "Administrator",
		Email:    email,
		Password: hashedPassword,
		Role:     RoleAdmin,
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("role = ?", RoleAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&admin).Error
	})
}
