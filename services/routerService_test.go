package services

import (
	"DreyCare/models"
	"context"
	"errors"
	"testing"
)

// fakeVisitStore keeps visits in memory and applies UpdateFields the way the
// real store does: both routing fields written together.
type fakeVisitStore struct {
	visits     map[string]*models.Visit
	getErr     error
	updateErr  error
	createErr  error
	updateLog  []map[string]interface{}
	createdIDs int
}

func newFakeVisitStore(visits ...*models.Visit) *fakeVisitStore {
	s := &fakeVisitStore{visits: make(map[string]*models.Visit)}
	for _, v := range visits {
		s.visits[v.ID] = v
	}
	return s
}

func (s *fakeVisitStore) Create(ctx context.Context, visit *models.Visit) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.createdIDs++
	if visit.ID == "" {
		visit.ID = "generated-visit-id"
	}
	s.visits[visit.ID] = visit
	return nil
}

func (s *fakeVisitStore) GetByID(ctx context.Context, id string) (*models.Visit, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	visit, ok := s.visits[id]
	if !ok {
		return nil, nil
	}
	copied := *visit
	return &copied, nil
}

func (s *fakeVisitStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Visit, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	visit, ok := s.visits[id]
	if !ok {
		return nil, errors.New("visit vanished")
	}
	s.updateLog = append(s.updateLog, fields)
	if v, ok := fields["status"]; ok {
		visit.Status = v.(models.VisitStatus)
	}
	if v, ok := fields["current_location"]; ok {
		visit.CurrentLocation = v.(models.Location)
	}
	if v, ok := fields["diagnosis"]; ok {
		visit.Diagnosis = v.(string)
	}
	if v, ok := fields["notes"]; ok {
		visit.Notes = v.(string)
	}
	if v, ok := fields["assigned_doctor_id"]; ok {
		visit.AssignedDoctorID = v.(string)
	}
	copied := *visit
	return &copied, nil
}

type fakePrescriptionStore struct {
	created  []*models.Prescription
	failAt   int // 1-based index of the create that fails; 0 never fails
	failWith error
}

func (s *fakePrescriptionStore) Create(ctx context.Context, prescription *models.Prescription) error {
	if s.failAt > 0 && len(s.created)+1 == s.failAt {
		return s.failWith
	}
	s.created = append(s.created, prescription)
	return nil
}

func visitAt(id string, location models.Location, status models.VisitStatus) *models.Visit {
	return &models.Visit{
		ID:               id,
		PatientID:        "patient-1",
		AssignedDoctorID: "doctor-1",
		Status:           status,
		CurrentLocation:  location,
	}
}

func TestRouteLegalTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       models.Location
		fromStatus models.VisitStatus
		target     models.Location
		wantStatus models.VisitStatus
	}{
		{"frontdesk to doctor", models.LocationFrontDesk, models.StatusPending, models.LocationDoctor, models.StatusInConsultation},
		{"doctor to lab", models.LocationDoctor, models.StatusInConsultation, models.LocationLab, models.StatusLabRequested},
		{"doctor to pharmacy", models.LocationDoctor, models.StatusInConsultation, models.LocationPharmacy, models.StatusPharmacyRequested},
		{"doctor to accounts", models.LocationDoctor, models.StatusInConsultation, models.LocationAccounts, models.StatusBilling},
		{"doctor to frontdesk", models.LocationDoctor, models.StatusInConsultation, models.LocationFrontDesk, models.StatusPending},
		{"lab to doctor", models.LocationLab, models.StatusLabRequested, models.LocationDoctor, models.StatusInConsultation},
		{"lab to frontdesk", models.LocationLab, models.StatusLabRequested, models.LocationFrontDesk, models.StatusPending},
		{"pharmacy to accounts", models.LocationPharmacy, models.StatusPharmacyRequested, models.LocationAccounts, models.StatusBilling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeVisitStore(visitAt("v1", tt.from, tt.fromStatus))
			router := NewRouterService(store, &fakePrescriptionStore{})

			updated, err := router.Route(context.Background(), "v1", string(tt.from), tt.target, RoutePayload{})
			if err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if updated.CurrentLocation != tt.target {
				t.Errorf("CurrentLocation = %s, want %s", updated.CurrentLocation, tt.target)
			}
			if updated.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", updated.Status, tt.wantStatus)
			}
			if len(store.updateLog) != 1 {
				t.Fatalf("expected one update, got %d", len(store.updateLog))
			}
			fields := store.updateLog[0]
			if _, ok := fields["status"]; !ok {
				t.Error("update is missing status")
			}
			if _, ok := fields["current_location"]; !ok {
				t.Error("update is missing current_location")
			}
		})
	}
}

func TestRouteIllegalTargets(t *testing.T) {
	tests := []struct {
		name   string
		from   models.Location
		target models.Location
	}{
		{"frontdesk to lab", models.LocationFrontDesk, models.LocationLab},
		{"frontdesk to pharmacy", models.LocationFrontDesk, models.LocationPharmacy},
		{"frontdesk to accounts", models.LocationFrontDesk, models.LocationAccounts},
		{"lab to pharmacy", models.LocationLab, models.LocationPharmacy},
		{"lab to accounts", models.LocationLab, models.LocationAccounts},
		{"pharmacy to doctor", models.LocationPharmacy, models.LocationDoctor},
		{"pharmacy to lab", models.LocationPharmacy, models.LocationLab},
		{"accounts to doctor", models.LocationAccounts, models.LocationDoctor},
		{"doctor to doctor", models.LocationDoctor, models.LocationDoctor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeVisitStore(visitAt("v1", tt.from, models.StatusPending))
			router := NewRouterService(store, &fakePrescriptionStore{})

			_, err := router.Route(context.Background(), "v1", string(tt.from), tt.target, RoutePayload{})
			var routingErr *RoutingError
			if !errors.As(err, &routingErr) {
				t.Fatalf("Route() error = %v, want RoutingError", err)
			}
			if routingErr.Code != RoutingInvalidTarget {
				t.Errorf("Code = %s, want %s", routingErr.Code, RoutingInvalidTarget)
			}
			if len(store.updateLog) != 0 {
				t.Error("visit was updated despite rejection")
			}
		})
	}
}

func TestRouteRoleMismatchLeavesVisitUnchanged(t *testing.T) {
	store := newFakeVisitStore(visitAt("v1", models.LocationDoctor, models.StatusInConsultation))
	router := NewRouterService(store, &fakePrescriptionStore{})

	_, err := router.Route(context.Background(), "v1", "lab", models.LocationPharmacy, RoutePayload{})
	var routingErr *RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("Route() error = %v, want RoutingError", err)
	}
	if routingErr.Code != RoutingRoleMismatch {
		t.Errorf("Code = %s, want %s", routingErr.Code, RoutingRoleMismatch)
	}
	if len(store.updateLog) != 0 {
		t.Error("visit was updated despite role mismatch")
	}
	if got := store.visits["v1"]; got.CurrentLocation != models.LocationDoctor || got.Status != models.StatusInConsultation {
		t.Errorf("visit changed to (%s, %s)", got.Status, got.CurrentLocation)
	}
}

func TestRouteUnknownVisit(t *testing.T) {
	router := NewRouterService(newFakeVisitStore(), &fakePrescriptionStore{})

	_, err := router.Route(context.Background(), "missing", "doctor", models.LocationLab, RoutePayload{})
	var routingErr *RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("Route() error = %v, want RoutingError", err)
	}
	if routingErr.Code != RoutingUnknownVisit {
		t.Errorf("Code = %s, want %s", routingErr.Code, RoutingUnknownVisit)
	}
}

func TestRouteCompletedVisitIsTerminal(t *testing.T) {
	store := newFakeVisitStore(visitAt("v1", models.LocationAccounts, models.StatusCompleted))
	router := NewRouterService(store, &fakePrescriptionStore{})

	_, err := router.Route(context.Background(), "v1", "accounts", models.LocationDoctor, RoutePayload{})
	var routingErr *RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("Route() error = %v, want RoutingError", err)
	}
	if routingErr.Code != RoutingCompleted {
		t.Errorf("Code = %s, want %s", routingErr.Code, RoutingCompleted)
	}
}

func TestRouteDoctorPersistsDiagnosisAndPrescriptions(t *testing.T) {
	store := newFakeVisitStore(visitAt("v1", models.LocationDoctor, models.StatusInConsultation))
	prescriptions := &fakePrescriptionStore{}
	router := NewRouterService(store, prescriptions)

	payload := RoutePayload{
		Diagnosis: "malaria",
		Notes:     "follow up in one week",
		Prescriptions: []PrescriptionDraft{
			{DrugID: "d1", Dosage: "500mg", Frequency: "twice daily", Duration: "7 days"},
			{DrugID: "d2", Dosage: "", Frequency: "once daily", Duration: "3 days"}, // incomplete, dropped
			{DrugID: "d3", Dosage: "250mg", Frequency: "once daily", Duration: "5 days"},
		},
	}
	updated, err := router.Route(context.Background(), "v1", "doctor", models.LocationPharmacy, payload)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if updated.Diagnosis != "malaria" {
		t.Errorf("Diagnosis = %q, want %q", updated.Diagnosis, "malaria")
	}
	if len(prescriptions.created) != 2 {
		t.Fatalf("created %d prescriptions, want 2", len(prescriptions.created))
	}
	if prescriptions.created[0].DrugID != "d1" || prescriptions.created[1].DrugID != "d3" {
		t.Errorf("prescriptions created out of order or wrong: %s, %s",
			prescriptions.created[0].DrugID, prescriptions.created[1].DrugID)
	}
	for _, p := range prescriptions.created {
		if p.VisitID != "v1" {
			t.Errorf("prescription visit ID = %q, want v1", p.VisitID)
		}
	}
}

func TestRoutePrescriptionFailureReturnsMovedVisit(t *testing.T) {
	store := newFakeVisitStore(visitAt("v1", models.LocationDoctor, models.StatusInConsultation))
	prescriptions := &fakePrescriptionStore{failAt: 2, failWith: errors.New("db down")}
	router := NewRouterService(store, prescriptions)

	payload := RoutePayload{
		Prescriptions: []PrescriptionDraft{
			{DrugID: "d1", Dosage: "500mg", Frequency: "twice daily", Duration: "7 days"},
			{DrugID: "d2", Dosage: "250mg", Frequency: "once daily", Duration: "5 days"},
		},
	}
	updated, err := router.Route(context.Background(), "v1", "doctor", models.LocationPharmacy, payload)

	var persistErr *PersistenceError
	if !errors.As(err, &persistErr) {
		t.Fatalf("Route() error = %v, want PersistenceError", err)
	}
	if persistErr.Op != "create_prescription" {
		t.Errorf("Op = %q, want create_prescription", persistErr.Op)
	}
	if persistErr.Key != "d2" {
		t.Errorf("Key = %q, want d2", persistErr.Key)
	}
	if updated == nil {
		t.Fatal("moved visit not returned alongside the error")
	}
	if updated.CurrentLocation != models.LocationPharmacy {
		t.Errorf("CurrentLocation = %s, want pharmacy", updated.CurrentLocation)
	}
	if len(prescriptions.created) != 1 {
		t.Errorf("created %d prescriptions before the failure, want 1", len(prescriptions.created))
	}
}

func TestRouteFrontDeskRequiresAssignedDoctor(t *testing.T) {
	visit := visitAt("v1", models.LocationFrontDesk, models.StatusPending)
	visit.AssignedDoctorID = ""
	store := newFakeVisitStore(visit)
	router := NewRouterService(store, &fakePrescriptionStore{})

	_, err := router.Route(context.Background(), "v1", "frontdesk", models.LocationDoctor, RoutePayload{})
	var routingErr *RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("Route() error = %v, want RoutingError", err)
	}
	if routingErr.Code != RoutingInvalidTarget {
		t.Errorf("Code = %s, want %s", routingErr.Code, RoutingInvalidTarget)
	}

	// Supplying the doctor in the payload unblocks the move.
	updated, err := router.Route(context.Background(), "v1", "frontdesk", models.LocationDoctor,
		RoutePayload{AssignedDoctorID: "doctor-9"})
	if err != nil {
		t.Fatalf("Route() with doctor error = %v", err)
	}
	if updated.AssignedDoctorID != "doctor-9" {
		t.Errorf("AssignedDoctorID = %q, want doctor-9", updated.AssignedDoctorID)
	}
}

func TestIntakeStartsVisitAtDoctor(t *testing.T) {
	store := newFakeVisitStore()
	router := NewRouterService(store, &fakePrescriptionStore{})

	weight := 72.5
	visit, err := router.Intake(context.Background(), "frontdesk", IntakeParams{
		PatientID:        "patient-1",
		CreatedBy:        "user-1",
		AssignedDoctorID: "doctor-1",
		Weight:           &weight,
		ChiefComplaint:   "headache",
	})
	if err != nil {
		t.Fatalf("Intake() error = %v", err)
	}
	if visit.Status != models.StatusInConsultation {
		t.Errorf("Status = %s, want %s", visit.Status, models.StatusInConsultation)
	}
	if visit.CurrentLocation != models.LocationDoctor {
		t.Errorf("CurrentLocation = %s, want %s", visit.CurrentLocation, models.LocationDoctor)
	}
	if visit.Prescriptions == nil || visit.LabResults == nil {
		t.Error("child slices must be non-nil on a new visit")
	}
}

func TestIntakeRejections(t *testing.T) {
	router := NewRouterService(newFakeVisitStore(), &fakePrescriptionStore{})

	if _, err := router.Intake(context.Background(), "doctor", IntakeParams{
		PatientID: "patient-1", AssignedDoctorID: "doctor-1",
	}); err == nil {
		t.Error("non-frontdesk intake accepted")
	}

	if _, err := router.Intake(context.Background(), "frontdesk", IntakeParams{
		AssignedDoctorID: "doctor-1",
	}); err == nil {
		t.Error("intake without a patient accepted")
	}

	if _, err := router.Intake(context.Background(), "frontdesk", IntakeParams{
		PatientID: "patient-1",
	}); err == nil {
		t.Error("intake without an assigned doctor accepted")
	}
}

func TestCompletePayment(t *testing.T) {
	store := newFakeVisitStore(visitAt("v1", models.LocationAccounts, models.StatusBilling))
	router := NewRouterService(store, &fakePrescriptionStore{})

	updated, err := router.CompletePayment(context.Background(), "v1", "accounts")
	if err != nil {
		t.Fatalf("CompletePayment() error = %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("Status = %s, want completed", updated.Status)
	}
	if updated.CurrentLocation != models.LocationAccounts {
		t.Errorf("CurrentLocation = %s, want accounts", updated.CurrentLocation)
	}

	// A completed visit rejects a second completion.
	if _, err := router.CompletePayment(context.Background(), "v1", "accounts"); err == nil {
		t.Error("second completion accepted")
	}
}

func TestCompletePaymentRequiresAccounts(t *testing.T) {
	store := newFakeVisitStore(visitAt("v1", models.LocationDoctor, models.StatusInConsultation))
	router := NewRouterService(store, &fakePrescriptionStore{})

	_, err := router.CompletePayment(context.Background(), "v1", "accounts")
	var routingErr *RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("CompletePayment() error = %v, want RoutingError", err)
	}
	if routingErr.Code != RoutingRoleMismatch {
		t.Errorf("Code = %s, want %s", routingErr.Code, RoutingRoleMismatch)
	}

	store2 := newFakeVisitStore(visitAt("v2", models.LocationAccounts, models.StatusBilling))
	router2 := NewRouterService(store2, &fakePrescriptionStore{})
	if _, err := router2.CompletePayment(context.Background(), "v2", "doctor"); err == nil {
		t.Error("non-accounts completion accepted")
	}
}
