package utils

import (
	"DreyCare/models"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateUserData(t *testing.T) {
	valid := models.User{
		Name:     "Jane Doe",
		Email:    "jane@dreycare.example.com",
		Role:     models.RoleDoctor,
		Password: "longenoughpassword",
	}
	if err := ValidateUserData(valid); err != nil {
		t.Errorf("valid user rejected: %v", err)
	}

	invalid := valid
	invalid.Role = "janitor"
	if err := ValidateUserData(invalid); err == nil {
		t.Error("unknown role accepted")
	}

	invalid = valid
	invalid.Password = "short"
	if err := ValidateUserData(invalid); err == nil {
		t.Error("short password accepted")
	}

	invalid = valid
	invalid.Email = "not-an-email"
	if err := ValidateUserData(invalid); err == nil {
		t.Error("malformed email accepted")
	}
}

func TestValidatePatientData(t *testing.T) {
	valid := models.Patient{
		FirstName:   "John",
		LastName:    "Smith",
		Gender:      "male",
		DateOfBirth: "1990-04-12",
	}
	if err := ValidatePatientData(valid); err != nil {
		t.Errorf("valid patient rejected: %v", err)
	}

	invalid := valid
	invalid.Gender = "other"
	if err := ValidatePatientData(invalid); err == nil {
		t.Error("unexpected gender value accepted")
	}

	invalid = valid
	invalid.DateOfBirth = "12/04/1990"
	if err := ValidatePatientData(invalid); err == nil {
		t.Error("malformed date of birth accepted")
	}
}

func TestValidateDrugData(t *testing.T) {
	valid := models.Drug{
		Name:          "Paracetamol 500mg",
		Unit:          "tablet",
		PurchasePrice: decimal.RequireFromString("8.00"),
		SalesPrice:    decimal.RequireFromString("12.50"),
		StockQuantity: 200,
		ReorderLevel:  20,
	}
	if err := ValidateDrugData(valid); err != nil {
		t.Errorf("valid drug rejected: %v", err)
	}

	invalid := valid
	invalid.SalesPrice = decimal.RequireFromString("-1.00")
	if err := ValidateDrugData(invalid); err == nil {
		t.Error("negative sales price accepted")
	}

	invalid = valid
	invalid.Name = ""
	if err := ValidateDrugData(invalid); err == nil {
		t.Error("nameless drug accepted")
	}
}

func TestValidateLabResultData(t *testing.T) {
	valid := models.LabResult{
		VisitID:     "v1",
		TestName:    "Full Blood Count",
		TestResult:  "normal",
		PerformedBy: "user-1",
	}
	if err := ValidateLabResultData(valid); err != nil {
		t.Errorf("valid lab result rejected: %v", err)
	}

	invalid := valid
	invalid.TestResult = ""
	if err := ValidateLabResultData(invalid); err == nil {
		t.Error("lab result without an outcome accepted")
	}
}
