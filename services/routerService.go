package services

import (
	"DreyCare/models"
	"context"
	"time"
)

// VisitStore is the slice of visit persistence the router needs.
type VisitStore interface {
	Create(ctx context.Context, visit *models.Visit) error
	GetByID(ctx context.Context, id string) (*models.Visit, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Visit, error)
}

// PrescriptionStore persists prescriptions staged during consultation.
type PrescriptionStore interface {
	Create(ctx context.Context, prescription *models.Prescription) error
}

// PrescriptionDraft is one staged drug selection. Drafts are kept in staging
// order; a draft becomes a prescription only when dosage, frequency and
// duration are all filled in, otherwise it is dropped without error.
type PrescriptionDraft struct {
	DrugID    string `json:"drug_id"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Complete reports whether the draft has all three required fields.
func (d PrescriptionDraft) Complete() bool {
	return d.DrugID != "" && d.Dosage != "" && d.Frequency != "" && d.Duration != ""
}

// RoutePayload carries the data a transition may attach to the visit.
// Diagnosis, notes and prescriptions are honored only on doctor transitions.
type RoutePayload struct {
	Diagnosis        string              `json:"diagnosis"`
	Notes            string              `json:"notes"`
	AssignedDoctorID string              `json:"assigned_doctor_id"`
	Prescriptions    []PrescriptionDraft `json:"prescriptions"`
}

// IntakeParams describes a new visit registered at the front desk.
type IntakeParams struct {
	PatientID              string   `json:"patient_id"`
	CreatedBy              string   `json:"-"`
	AssignedDoctorID       string   `json:"assigned_doctor_id"`
	Weight                 *float64 `json:"weight"`
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic"`
	Temperature            *float64 `json:"temperature"`
	PulseRate              *int     `json:"pulse_rate"`
	RespiratoryRate        *int     `json:"respiratory_rate"`
	ChiefComplaint         string   `json:"chief_complaint"`
}

// RouterService owns every change to a visit's (status, current_location)
// pair. The two fields are written together in a single update, never
// independently: status records why the visit moved, current_location is the
// routing pointer each department queue reads.
type RouterService struct {
	visits        VisitStore
	prescriptions PrescriptionStore
}

func NewRouterService(visits VisitStore, prescriptions PrescriptionStore) *RouterService {
	return &RouterService{visits: visits, prescriptions: prescriptions}
}

// legalTargets maps each location to the departments it may hand a visit to.
// The accounts terminal transition goes through CompletePayment instead.
var legalTargets = map[models.Location][]models.Location{
	models.LocationDoctor:    {models.LocationFrontDesk, models.LocationLab, models.LocationPharmacy, models.LocationAccounts},
	models.LocationLab:       {models.LocationDoctor, models.LocationFrontDesk},
	models.LocationPharmacy:  {models.LocationAccounts},
	models.LocationFrontDesk: {models.LocationDoctor},
	models.LocationAccounts:  {},
}

// statusForLocation yields the status that accompanies arrival at a location.
// One consistent rule for every transition: the status names what the target
// department is expected to do next.
func statusForLocation(target models.Location) models.VisitStatus {
	switch target {
	case models.LocationFrontDesk:
		return models.StatusPending
	case models.LocationDoctor:
		return models.StatusInConsultation
	case models.LocationLab:
		return models.StatusLabRequested
	case models.LocationPharmacy:
		return models.StatusPharmacyRequested
	case models.LocationAccounts:
		return models.StatusBilling
	}
	return models.StatusPending
}

// Route validates and applies one transition of a visit between departments.
// Only an actor whose role matches the visit's current location may move it.
// On doctor transitions the payload's diagnosis and notes are persisted with
// the move and complete prescription drafts are created afterwards, in order.
//
// Writes are best-effort sequential, not atomic: if a prescription create
// fails after the visit has moved, the moved visit is returned together with
// a PersistenceError naming the failed draft. Callers must surface the error
// for manual reconciliation instead of retrying blindly, since a retry would
// double-create the prescriptions that did succeed.
func (s *RouterService) Route(ctx context.Context, visitID, actorRole string, target models.Location, payload RoutePayload) (*models.Visit, error) {
	visit, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return nil, &PersistenceError{Op: "load_visit", Key: visitID, Err: err}
	}
	if visit == nil {
		return nil, &RoutingError{Code: RoutingUnknownVisit, VisitID: visitID, ActorRole: actorRole, Target: target}
	}
	if visit.Completed() {
		return nil, &RoutingError{Code: RoutingCompleted, VisitID: visitID, ActorRole: actorRole, Target: target,
			Reason: "visit is completed and accepts no further transitions"}
	}
	if actorRole != string(visit.CurrentLocation) {
		return nil, &RoutingError{Code: RoutingRoleMismatch, VisitID: visitID, ActorRole: actorRole, Target: target,
			Reason: "visit is currently at " + string(visit.CurrentLocation)}
	}
	if !isLegalTarget(visit.CurrentLocation, target) {
		return nil, &RoutingError{Code: RoutingInvalidTarget, VisitID: visitID, ActorRole: actorRole, Target: target}
	}

	fields := map[string]interface{}{
		"status":           statusForLocation(target),
		"current_location": target,
	}

	fromDoctor := visit.CurrentLocation == models.LocationDoctor
	if fromDoctor {
		fields["diagnosis"] = payload.Diagnosis
		fields["notes"] = payload.Notes
	}
	if visit.CurrentLocation == models.LocationFrontDesk && target == models.LocationDoctor {
		doctorID := payload.AssignedDoctorID
		if doctorID == "" {
			doctorID = visit.AssignedDoctorID
		}
		if doctorID == "" {
			return nil, &RoutingError{Code: RoutingInvalidTarget, VisitID: visitID, ActorRole: actorRole, Target: target,
				Reason: "no doctor assigned"}
		}
		fields["assigned_doctor_id"] = doctorID
	}

	updated, err := s.visits.UpdateFields(ctx, visitID, fields)
	if err != nil {
		return nil, &PersistenceError{Op: "update_visit", Key: visitID, Err: err}
	}

	if fromDoctor {
		for _, draft := range payload.Prescriptions {
			if !draft.Complete() {
				continue
			}
			prescription := &models.Prescription{
				VisitID:   visitID,
				DrugID:    draft.DrugID,
				Dosage:    draft.Dosage,
				Frequency: draft.Frequency,
				Duration:  draft.Duration,
			}
			if err := s.prescriptions.Create(ctx, prescription); err != nil {
				// The visit has already moved; report how far we got.
				return updated, &PersistenceError{Op: "create_prescription", Key: draft.DrugID, Err: err}
			}
			updated.Prescriptions = append(updated.Prescriptions, *prescription)
		}
	}

	return updated, nil
}

// Intake registers a new visit at the front desk. Every visit starts in
// consultation at the doctor; there is no other entry point.
func (s *RouterService) Intake(ctx context.Context, actorRole string, params IntakeParams) (*models.Visit, error) {
	if actorRole != string(models.LocationFrontDesk) {
		return nil, &RoutingError{Code: RoutingRoleMismatch, ActorRole: actorRole, Target: models.LocationDoctor,
			Reason: "only the front desk registers visits"}
	}
	if params.PatientID == "" || params.AssignedDoctorID == "" {
		return nil, &RoutingError{Code: RoutingInvalidTarget, ActorRole: actorRole, Target: models.LocationDoctor,
			Reason: "intake requires a patient and an assigned doctor"}
	}

	visit := &models.Visit{
		PatientID:              params.PatientID,
		Weight:                 params.Weight,
		BloodPressureSystolic:  params.BloodPressureSystolic,
		BloodPressureDiastolic: params.BloodPressureDiastolic,
		Temperature:            params.Temperature,
		PulseRate:              params.PulseRate,
		RespiratoryRate:        params.RespiratoryRate,
		ChiefComplaint:         params.ChiefComplaint,
		VisitDate:              time.Now().UTC(),
		CreatedBy:              params.CreatedBy,
		AssignedDoctorID:       params.AssignedDoctorID,
		Status:                 models.StatusInConsultation,
		CurrentLocation:        models.LocationDoctor,
		Prescriptions:          []models.Prescription{},
		LabResults:             []models.LabResult{},
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, &PersistenceError{Op: "create_visit", Key: params.PatientID, Err: err}
	}
	return visit, nil
}

// CompletePayment is the terminal transition: accounts accepts payment and
// the visit leaves every queue for good.
func (s *RouterService) CompletePayment(ctx context.Context, visitID, actorRole string) (*models.Visit, error) {
	visit, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return nil, &PersistenceError{Op: "load_visit", Key: visitID, Err: err}
	}
	if visit == nil {
		return nil, &RoutingError{Code: RoutingUnknownVisit, VisitID: visitID, ActorRole: actorRole}
	}
	if visit.Completed() {
		return nil, &RoutingError{Code: RoutingCompleted, VisitID: visitID, ActorRole: actorRole,
			Reason: "visit is already completed"}
	}
	if actorRole != string(models.LocationAccounts) || visit.CurrentLocation != models.LocationAccounts {
		return nil, &RoutingError{Code: RoutingRoleMismatch, VisitID: visitID, ActorRole: actorRole,
			Reason: "payment is accepted at accounts only"}
	}

	updated, err := s.visits.UpdateFields(ctx, visitID, map[string]interface{}{
		"status":           models.StatusCompleted,
		"current_location": models.LocationAccounts,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "update_visit", Key: visitID, Err: err}
	}
	return updated, nil
}

func isLegalTarget(from, target models.Location) bool {
	for _, t := range legalTargets[from] {
		if t == target {
			return true
		}
	}
	return false
}
