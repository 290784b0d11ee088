package models

import (
	"github.com/shopspring/decimal"
)

// Invoice line item types.
const (
	ItemConsultation = "consultation"
	ItemLabTest      = "lab_test"
	ItemDrug         = "drug"
)

// InvoiceLine is one charge on a visit invoice.
type InvoiceLine struct {
	ItemType   string          `json:"item_type"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Invoice is the itemized bill for a visit. It is derived on demand from the
// visit's consultation, lab results and prescriptions and is never persisted;
// recomputing it from the same visit snapshot yields the same invoice.
type Invoice struct {
	VisitID   string          `json:"visit_id"`
	PatientID string          `json:"patient_id"`
	Lines     []InvoiceLine   `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}
