package controllers

import (
	"DreyCare/handlers"
	"DreyCare/middlewares"
	"DreyCare/models"

	"github.com/gin-gonic/gin"
)

// SetupHospitalRoutes registers the patient-flow, pharmacy, lab, billing and
// messaging routes. Every route requires a valid token; write routes are
// further restricted to the department that owns them.
func SetupHospitalRoutes(router *gin.Engine, visitHandler *handlers.VisitHandler, patientHandler *handlers.PatientHandler, drugHandler *handlers.DrugHandler, labHandler *handlers.LabHandler, billingHandler *handlers.BillingHandler, prescriptionHandler *handlers.PrescriptionHandler, messageHandler *handlers.MessageHandler, statsHandler *handlers.StatsHandler) {
	api := router.Group("/").Use(middlewares.TokenAuthMiddleware())
	{
		api.GET("/patients", patientHandler.SearchPatients)
		api.GET("/patients/:patient_id", patientHandler.GetPatientByID)
		api.GET("/patients/:patient_id/visits", visitHandler.PatientHistory)

		api.GET("/visits/:id", visitHandler.GetVisit)
		api.GET("/visits", visitHandler.Recent)
		api.GET("/queues/:location", visitHandler.Queue)

		api.GET("/drugs", drugHandler.GetAllDrugs)
		api.GET("/drugs/:id", drugHandler.GetDrugByID)

		api.GET("/visits/:id/lab_results", labHandler.GetLabResults)
		api.GET("/visits/:id/prescriptions", prescriptionHandler.GetPrescriptions)
		api.GET("/visits/:id/invoice", billingHandler.GetInvoice)

		api.POST("/messages", messageHandler.SendMessage)
		api.GET("/messages", messageHandler.Inbox)
		api.PUT("/messages/:id/read", messageHandler.MarkRead)
		api.GET("/departments/:role/messages", messageHandler.DepartmentBoard)

		api.GET("/statistics", statsHandler.GetStatistics)
	}

	// Any department may forward a visit it currently holds; the routing
	// service enforces the role/location match itself.
	routing := router.Group("/").Use(middlewares.TokenAuthMiddleware())
	{
		routing.POST("/visits/:id/route", visitHandler.Route)
	}

	frontdesk := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleFrontDesk),
	)
	{
		frontdesk.POST("/patients", patientHandler.CreatePatient)
		frontdesk.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
		frontdesk.POST("/visits", visitHandler.Intake)
	}

	lab := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleLab),
	)
	{
		lab.POST("/visits/:id/lab_results", labHandler.CreateLabResult)
	}

	pharmacy := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RolePharmacy),
	)
	{
		pharmacy.POST("/drugs", drugHandler.CreateDrug)
		pharmacy.PUT("/drugs/:id", drugHandler.UpdateDrug)
		pharmacy.DELETE("/drugs/:id", drugHandler.DeleteDrug)
		pharmacy.GET("/inventory", drugHandler.GetInventory)
		pharmacy.POST("/drugs/:id/dispense", drugHandler.Dispense)
	}

	accounts := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleAccounts),
	)
	{
		accounts.POST("/visits/:id/complete", visitHandler.CompletePayment)
	}
}
