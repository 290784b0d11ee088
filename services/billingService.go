package services

import (
	"DreyCare/models"
	"context"

	"github.com/shopspring/decimal"
)

// PricingPolicy fixes the unit prices billing derives invoices from. It is
// the single place pricing changes.
type PricingPolicy struct {
	ConsultationFee decimal.Decimal
	LabTestFee      decimal.Decimal
}

// DefaultPricing returns the current flat-rate policy.
func DefaultPricing() PricingPolicy {
	return PricingPolicy{
		ConsultationFee: decimal.NewFromInt(100),
		LabTestFee:      decimal.NewFromInt(50),
	}
}

// LabTestPrice prices one lab test. The current policy is a flat rate
// regardless of test name; differentiated pricing slots in here.
func (p PricingPolicy) LabTestPrice(testName string) decimal.Decimal {
	return p.LabTestFee
}

// ComputeInvoice derives the itemized bill for a visit. Pure: no I/O, no
// side effects, and deterministic for a given visit snapshot — the invoice is
// recomputed on every view, never stored.
//
// Line order is fixed: one consultation line always, then one line per lab
// result in storage order, then one line per prescription in storage order.
// A prescription whose drug cannot be resolved bills at zero.
func ComputeInvoice(visit *models.Visit, policy PricingPolicy) models.Invoice {
	lines := []models.InvoiceLine{
		{
			ItemType:   models.ItemConsultation,
			Name:       "Doctor Consultation",
			Quantity:   1,
			UnitPrice:  policy.ConsultationFee,
			TotalPrice: policy.ConsultationFee,
		},
	}

	for _, lab := range visit.LabResults {
		price := policy.LabTestPrice(lab.TestName)
		lines = append(lines, models.InvoiceLine{
			ItemType:   models.ItemLabTest,
			Name:       lab.TestName,
			Quantity:   1,
			UnitPrice:  price,
			TotalPrice: price,
		})
	}

	for _, prescription := range visit.Prescriptions {
		price := decimal.Zero
		name := "Medication"
		if prescription.Drug != nil {
			price = prescription.Drug.SalesPrice
			name = prescription.Drug.Name
		}
		lines = append(lines, models.InvoiceLine{
			ItemType:   models.ItemDrug,
			Name:       name,
			Quantity:   1,
			UnitPrice:  price,
			TotalPrice: price,
		})
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.TotalPrice)
	}

	return models.Invoice{
		VisitID:   visit.ID,
		PatientID: visit.PatientID,
		Lines:     lines,
		Total:     total,
	}
}

// BillingService serves invoices over a visit store for the accounts
// dashboard; the arithmetic itself lives in ComputeInvoice.
type BillingService struct {
	visits  VisitStore
	pricing PricingPolicy
}

func NewBillingService(visits VisitStore, pricing PricingPolicy) *BillingService {
	return &BillingService{visits: visits, pricing: pricing}
}

// InvoiceForVisit loads the visit snapshot and derives its invoice.
func (s *BillingService) InvoiceForVisit(ctx context.Context, visitID string) (*models.Invoice, error) {
	visit, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return nil, &PersistenceError{Op: "load_visit", Key: visitID, Err: err}
	}
	if visit == nil {
		return nil, &RoutingError{Code: RoutingUnknownVisit, VisitID: visitID}
	}
	invoice := ComputeInvoice(visit, s.pricing)
	return &invoice, nil
}
