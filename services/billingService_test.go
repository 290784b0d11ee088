package services

import (
	"DreyCare/models"
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeInvoiceConsultationOnly(t *testing.T) {
	visit := &models.Visit{ID: "v1", PatientID: "p1"}
	invoice := ComputeInvoice(visit, DefaultPricing())

	if len(invoice.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(invoice.Lines))
	}
	line := invoice.Lines[0]
	if line.ItemType != models.ItemConsultation {
		t.Errorf("ItemType = %s, want %s", line.ItemType, models.ItemConsultation)
	}
	if line.Name != "Doctor Consultation" {
		t.Errorf("Name = %q", line.Name)
	}
	if !invoice.Total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Total = %s, want 100", invoice.Total)
	}
}

func TestComputeInvoiceFullVisit(t *testing.T) {
	amoxicillin := &models.Drug{
		ID:         "d1",
		Name:       "Amoxicillin 500mg",
		SalesPrice: decimal.RequireFromString("1200.00"),
	}
	visit := &models.Visit{
		ID:        "v1",
		PatientID: "p1",
		LabResults: []models.LabResult{
			{TestName: "Malaria Parasite"},
			{TestName: "Full Blood Count"},
		},
		Prescriptions: []models.Prescription{
			{DrugID: "d1", Drug: amoxicillin},
		},
	}

	invoice := ComputeInvoice(visit, DefaultPricing())

	if len(invoice.Lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(invoice.Lines))
	}

	// Fixed order: consultation, then labs in storage order, then drugs.
	wantTypes := []string{models.ItemConsultation, models.ItemLabTest, models.ItemLabTest, models.ItemDrug}
	for i, want := range wantTypes {
		if invoice.Lines[i].ItemType != want {
			t.Errorf("line %d type = %s, want %s", i, invoice.Lines[i].ItemType, want)
		}
	}
	if invoice.Lines[1].Name != "Malaria Parasite" || invoice.Lines[2].Name != "Full Blood Count" {
		t.Errorf("lab lines out of storage order: %q, %q", invoice.Lines[1].Name, invoice.Lines[2].Name)
	}
	if !invoice.Lines[3].UnitPrice.Equal(decimal.RequireFromString("1200.00")) {
		t.Errorf("drug line unit price = %s, want 1200.00", invoice.Lines[3].UnitPrice)
	}
	if !invoice.Total.Equal(decimal.RequireFromString("1400.00")) {
		t.Errorf("Total = %s, want 1400.00", invoice.Total)
	}
}

func TestComputeInvoiceDeterministic(t *testing.T) {
	visit := &models.Visit{
		ID:         "v1",
		PatientID:  "p1",
		LabResults: []models.LabResult{{TestName: "Urinalysis"}},
	}

	first := ComputeInvoice(visit, DefaultPricing())
	second := ComputeInvoice(visit, DefaultPricing())

	if !first.Total.Equal(second.Total) || len(first.Lines) != len(second.Lines) {
		t.Errorf("invoice differs across recomputation: %s vs %s", first.Total, second.Total)
	}
}

func TestComputeInvoiceUnresolvedDrugBillsZero(t *testing.T) {
	visit := &models.Visit{
		ID:            "v1",
		PatientID:     "p1",
		Prescriptions: []models.Prescription{{DrugID: "gone"}},
	}

	invoice := ComputeInvoice(visit, DefaultPricing())

	if len(invoice.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(invoice.Lines))
	}
	drugLine := invoice.Lines[1]
	if drugLine.Name != "Medication" {
		t.Errorf("Name = %q, want Medication", drugLine.Name)
	}
	if !drugLine.UnitPrice.IsZero() {
		t.Errorf("UnitPrice = %s, want 0", drugLine.UnitPrice)
	}
	if !invoice.Total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Total = %s, want 100", invoice.Total)
	}
}

func TestInvoiceForVisit(t *testing.T) {
	store := newFakeVisitStore(&models.Visit{
		ID:         "v1",
		PatientID:  "p1",
		LabResults: []models.LabResult{{TestName: "Widal"}},
	})
	billing := NewBillingService(store, DefaultPricing())

	invoice, err := billing.InvoiceForVisit(context.Background(), "v1")
	if err != nil {
		t.Fatalf("InvoiceForVisit() error = %v", err)
	}
	if invoice.VisitID != "v1" || invoice.PatientID != "p1" {
		t.Errorf("invoice identity = (%s, %s)", invoice.VisitID, invoice.PatientID)
	}
	if !invoice.Total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Total = %s, want 150", invoice.Total)
	}

	if _, err := billing.InvoiceForVisit(context.Background(), "missing"); err == nil {
		t.Error("invoice derived for an unknown visit")
	}
}
