package handlers

import (
	"errors"

	"gatewise-vms/internal/core/domain"
	"gatewise-vms/internal/core/services"
	"gatewise-vms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ResidentHandler handles the resident portal endpoints. Every route
// here operates on the authenticated resident's own record.
type ResidentHandler struct {
	residentService    *services.ResidentService
	visitorService     *services.VisitorService
	maintenanceService *services.MaintenanceService
}

// NewResidentHandler creates a new resident handler
func NewResidentHandler(
	residentService *services.ResidentService,
	visitorService *services.VisitorService,
	maintenanceService *services.MaintenanceService,
) *ResidentHandler {
	return &ResidentHandler{
		residentService:    residentService,
		visitorService:     visitorService,
		maintenanceService: maintenanceService,
	}
}

// currentResident resolves the token subject to a resident record
func (h *ResidentHandler) currentResident(c *fiber.Ctx) (domain.ResidentProfile, bool) {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return domain.ResidentProfile{}, false
	}
	resident, err := h.residentService.GetByID(userID)
	if err != nil {
		return domain.ResidentProfile{}, false
	}
	return resident, true
}

// Me returns the authenticated resident's profile
// @Summary Get own profile
// @Description Returns the authenticated resident's profile
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /resident/me [get]
func (h *ResidentHandler) Me(c *fiber.Ctx) error {
	resident, ok := h.currentResident(c)
	if !ok {
		return response.Unauthorized(c, "Resident account not found")
	}
	return response.Success(c, "Profile retrieved", resident)
}

// UpdatePreferences updates the visitor-acceptance flag and allow-list
// @Summary Update visitor preferences
// @Description Toggle visitor acceptance and replace the guest allow-list
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PreferencesInput true "Preferences"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /resident/me/preferences [patch]
func (h *ResidentHandler) UpdatePreferences(c *fiber.Ctx) error {
	resident, ok := h.currentResident(c)
	if !ok {
		return response.Unauthorized(c, "Resident account not found")
	}

	var input services.PreferencesInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.residentService.UpdatePreferences(resident.ID, input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Resident not found")
		}
		return response.InternalServerError(c, "Failed to update preferences")
	}

	return response.Success(c, "Preferences updated", nil)
}

// MyVisitors returns the resident's visit history
// @Summary List own visitors
// @Description Returns every visit record tied to the authenticated resident
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /resident/me/visitors [get]
func (h *ResidentHandler) MyVisitors(c *fiber.Ctx) error {
	resident, ok := h.currentResident(c)
	if !ok {
		return response.Unauthorized(c, "Resident account not found")
	}
	visitors := h.visitorService.VisitorsForResident(resident.ID)
	return response.Success(c, "Visitors retrieved", visitors)
}

// ReportMaintenance files a maintenance issue for the resident's property
// @Summary Report maintenance issue
// @Description File a maintenance issue at the resident's own property
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MaintenanceReportInput true "Issue report"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /resident/maintenance [post]
func (h *ResidentHandler) ReportMaintenance(c *fiber.Ctx) error {
	resident, ok := h.currentResident(c)
	if !ok {
		return response.Unauthorized(c, "Resident account not found")
	}

	var input services.MaintenanceReportInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Residents always file against their own property
	input.PropertyName = resident.PropertyName
	input.ReportedBy = resident.FullName() + " (Unit " + resident.UnitNumber + ")"

	req, err := h.maintenanceService.Report(input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownProperty):
			return response.BadRequest(c, "Property is not an approved community")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Details are required")
		default:
			return response.InternalServerError(c, "Failed to file report")
		}
	}

	return response.Created(c, "Maintenance issue reported", req)
}

// MyMaintenance lists the property's maintenance requests
// @Summary List property maintenance requests
// @Description Returns maintenance requests for the resident's property
// @Tags Resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /resident/maintenance [get]
func (h *ResidentHandler) MyMaintenance(c *fiber.Ctx) error {
	resident, ok := h.currentResident(c)
	if !ok {
		return response.Unauthorized(c, "Resident account not found")
	}
	requests := h.maintenanceService.ListByProperty(resident.PropertyName)
	return response.Success(c, "Maintenance requests retrieved", requests)
}
