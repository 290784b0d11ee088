package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID               string    `gorm:"primaryKey;column:id" json:"id"`
	FirstName        string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName         string    `gorm:"column:last_name;not null;index" json:"last_name"`
	PhoneNumber      string    `gorm:"column:phone_number;index" json:"phone_number"`
	DateOfBirth      string    `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Gender           string    `gorm:"column:gender;check:gender IN ('male', 'female');not null" json:"gender"`
	Address          string    `gorm:"column:address" json:"address"`
	EmergencyContact string    `gorm:"column:emergency_contact" json:"emergency_contact"`
	BloodType        string    `gorm:"column:blood_type" json:"blood_type"`
	Allergies        string    `gorm:"column:allergies" json:"allergies"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Visits           []Visit   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}
