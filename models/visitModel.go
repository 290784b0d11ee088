package models

import (
	"time"
)

// VisitStatus is the informational label describing why a visit is where it is.
type VisitStatus string

const (
	StatusPending           VisitStatus = "pending"
	StatusInConsultation    VisitStatus = "in_consultation"
	StatusLabRequested      VisitStatus = "lab_requested"
	StatusPharmacyRequested VisitStatus = "pharmacy_requested"
	StatusBilling           VisitStatus = "billing"
	StatusCompleted         VisitStatus = "completed"
)

// Location is the department currently responsible for acting on a visit.
// It is the authoritative routing pointer; Status is historical context.
type Location string

const (
	LocationFrontDesk Location = "frontdesk"
	LocationDoctor    Location = "doctor"
	LocationLab       Location = "lab"
	LocationPharmacy  Location = "pharmacy"
	LocationAccounts  Location = "accounts"
)

// ValidLocation reports whether l is one of the five departments.
func ValidLocation(l Location) bool {
	switch l {
	case LocationFrontDesk, LocationDoctor, LocationLab, LocationPharmacy, LocationAccounts:
		return true
	}
	return false
}

// Visit model. One episode of patient care, created at front-desk intake and
// moved between departments by the router. Visits are never deleted; a
// completed visit is terminal.
type Visit struct {
	ID                     string         `gorm:"primaryKey;column:id" json:"id"`
	PatientID              string         `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Weight                 *float64       `gorm:"column:weight" json:"weight"`
	BloodPressureSystolic  *int           `gorm:"column:blood_pressure_systolic" json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int           `gorm:"column:blood_pressure_diastolic" json:"blood_pressure_diastolic"`
	Temperature            *float64       `gorm:"column:temperature" json:"temperature"`
	PulseRate              *int           `gorm:"column:pulse_rate" json:"pulse_rate"`
	RespiratoryRate        *int           `gorm:"column:respiratory_rate" json:"respiratory_rate"`
	ChiefComplaint         string         `gorm:"column:chief_complaint" json:"chief_complaint"`
	VisitDate              time.Time      `gorm:"column:visit_date;not null;index" json:"visit_date"`
	CreatedBy              string         `gorm:"column:created_by;not null" json:"created_by"`
	AssignedDoctorID       string         `gorm:"column:assigned_doctor_id;index" json:"assigned_doctor_id"`
	Status                 VisitStatus    `gorm:"column:status;check:status IN ('pending', 'in_consultation', 'lab_requested', 'pharmacy_requested', 'billing', 'completed');not null" json:"status"`
	CurrentLocation        Location       `gorm:"column:current_location;check:current_location IN ('frontdesk', 'doctor', 'lab', 'pharmacy', 'accounts');not null;index" json:"current_location"`
	Diagnosis              string         `gorm:"column:diagnosis" json:"diagnosis"`
	Notes                  string         `gorm:"column:notes" json:"notes"`
	CreatedAt              time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Patient                *Patient       `gorm:"foreignKey:PatientID;references:ID" json:"patient,omitempty"`
	Doctor                 *User          `gorm:"foreignKey:AssignedDoctorID;references:ID" json:"doctor,omitempty"`
	Prescriptions          []Prescription `gorm:"foreignKey:VisitID;references:ID" json:"prescriptions"`
	LabResults             []LabResult    `gorm:"foreignKey:VisitID;references:ID" json:"lab_results"`
}

func (Visit) TableName() string {
	return "patient_visits"
}

// Completed reports whether the visit has reached its terminal state.
func (v *Visit) Completed() bool {
	return v.Status == StatusCompleted
}

// Prescription model. A drug ordered during consultation; read-only after
// creation, dispensing acts on the Drug row, not on the prescription.
type Prescription struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	VisitID   string    `gorm:"column:visit_id;not null;index" json:"visit_id"`
	DrugID    string    `gorm:"column:drug_id;not null;index" json:"drug_id"`
	Dosage    string    `gorm:"column:dosage;not null" json:"dosage"`
	Frequency string    `gorm:"column:frequency;not null" json:"frequency"`
	Duration  string    `gorm:"column:duration;not null" json:"duration"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Drug      *Drug     `gorm:"foreignKey:DrugID;references:ID" json:"drug,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// LabResult model. Append-only; never mutated or deleted once created.
type LabResult struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	VisitID        string    `gorm:"column:visit_id;not null;index" json:"visit_id"`
	TestName       string    `gorm:"column:test_name;not null" json:"test_name"`
	TestResult     string    `gorm:"column:test_result;not null" json:"test_result"`
	ReferenceRange string    `gorm:"column:reference_range" json:"reference_range"`
	Notes          string    `gorm:"column:notes" json:"notes"`
	PerformedBy    string    `gorm:"column:performed_by;not null" json:"performed_by"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LabResult) TableName() string {
	return "lab_results"
}
