package utils

import (
	"DreyCare/models"
	"errors"
	"log"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrNegativePrice    = errors.New("price cannot be negative")
)

// ValidateUserData validates staff account data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Role, validation.Required, validation.By(validateRole)),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePatientData validates a patient record.
func ValidatePatientData(patient models.Patient) error {
	err := validation.ValidateStruct(&patient,
		validation.Field(&patient.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.Gender, validation.Required, validation.In("male", "female")),
		validation.Field(&patient.DateOfBirth, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&patient.PhoneNumber, validation.Length(0, 20)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateDrugData validates a catalog entry. Stock levels are validated
// here only on inventory writes; the dispense path has its own guard.
func ValidateDrugData(drug models.Drug) error {
	err := validation.ValidateStruct(&drug,
		validation.Field(&drug.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&drug.Unit, validation.Required),
		validation.Field(&drug.PurchasePrice, validation.By(validatePrice)),
		validation.Field(&drug.SalesPrice, validation.By(validatePrice)),
		validation.Field(&drug.StockQuantity, validation.Min(0)),
		validation.Field(&drug.ReorderLevel, validation.Min(0)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateLabResultData validates an appended test outcome.
func ValidateLabResultData(result models.LabResult) error {
	err := validation.ValidateStruct(&result,
		validation.Field(&result.VisitID, validation.Required),
		validation.Field(&result.TestName, validation.Required, validation.Length(1, 200)),
		validation.Field(&result.TestResult, validation.Required),
		validation.Field(&result.PerformedBy, validation.Required),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

func validateRole(value interface{}) error {
	role, _ := value.(string)
	if !models.ValidRole(role) {
		return errors.New("unknown role")
	}
	return nil
}

func validatePassword(value interface{}) error {
	password, _ := value.(string)
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

func validatePrice(value interface{}) error {
	price, _ := value.(decimal.Decimal)
	if price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
