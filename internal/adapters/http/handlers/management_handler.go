package handlers

import (
	"errors"

	"gatewise-vms/internal/adapters/http/middleware"
	"gatewise-vms/internal/core/domain"
	"gatewise-vms/internal/core/services"
	"gatewise-vms/internal/pkg/pagination"
	"gatewise-vms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ManagementHandler handles the property management portal endpoints.
// Every route is scoped to the properties the token administers.
type ManagementHandler struct {
	residentService     *services.ResidentService
	registrationService *services.RegistrationService
	maintenanceService  *services.MaintenanceService
	alertService        *services.AlertService
}

// NewManagementHandler creates a new management handler
func NewManagementHandler(
	residentService *services.ResidentService,
	registrationService *services.RegistrationService,
	maintenanceService *services.MaintenanceService,
	alertService *services.AlertService,
) *ManagementHandler {
	return &ManagementHandler{
		residentService:     residentService,
		registrationService: registrationService,
		maintenanceService:  maintenanceService,
		alertService:        alertService,
	}
}

// requireProperty reads the property query param and checks scope
func requireProperty(c *fiber.Ctx) (string, error) {
	propertyName := c.Query("property")
	if propertyName == "" {
		return "", response.BadRequest(c, "property query parameter is required")
	}
	if !middleware.PropertyScope(propertyName, c) {
		return "", response.Forbidden(c, "You don't manage this property")
	}
	return propertyName, nil
}

// ListResidents returns a managed property's residents
// @Summary List residents
// @Description Returns all residents of a managed property, paginated
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param property query string true "Property name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /management/residents [get]
func (h *ManagementHandler) ListResidents(c *fiber.Ctx) error {
	propertyName, err := requireProperty(c)
	if err != nil {
		return err
	}

	params := pagination.GetParams(c)
	residents := h.residentService.ListByProperty(propertyName)
	page, total := pagination.Slice(residents, params)

	return response.Success(c, "Residents retrieved", pagination.NewResponse(page, params, total))
}

// ImportResidents batch-inserts a pre-approved roster
// @Summary Batch import residents
// @Description Insert a roster of pre-approved residents for a managed property
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param property query string true "Property name"
// @Param body body []services.BatchImportRow true "Roster rows"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /management/residents/import [post]
func (h *ManagementHandler) ImportResidents(c *fiber.Ctx) error {
	propertyName, err := requireProperty(c)
	if err != nil {
		return err
	}

	var rows []services.BatchImportRow
	if err := c.BodyParser(&rows); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(rows) == 0 {
		return response.BadRequest(c, "Roster is empty")
	}

	count := h.residentService.BatchImport(propertyName, rows)
	return response.Created(c, "Roster imported", fiber.Map{"imported": count})
}

// residentInScope loads a resident and checks the caller manages them
func (h *ManagementHandler) residentInScope(c *fiber.Ctx, id string) (domain.ResidentProfile, error) {
	resident, err := h.residentService.GetByID(id)
	if err != nil {
		return domain.ResidentProfile{}, response.NotFound(c, "Resident not found")
	}
	if !middleware.PropertyScope(resident.PropertyName, c) {
		return domain.ResidentProfile{}, response.Forbidden(c, "You don't manage this property")
	}
	return resident, nil
}

// UpdateResident applies a partial profile update
// @Summary Update resident profile
// @Description Edit a resident's unit, lease dates, identity fields or credentials
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resident ID"
// @Param body body services.ProfileUpdateInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /management/residents/{id} [patch]
func (h *ManagementHandler) UpdateResident(c *fiber.Ctx) error {
	resident, err := h.residentInScope(c, c.Params("id"))
	if err != nil {
		return err
	}

	var input services.ProfileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.residentService.UpdateProfile(resident.ID, input)
	if err != nil {
		return response.NotFound(c, "Resident not found")
	}
	return response.Success(c, "Resident updated", updated)
}

// ApproveResident approves a pending resident request
// @Summary Approve resident
// @Description Approve a pending resident registration
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resident ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /management/residents/{id}/approve [post]
func (h *ManagementHandler) ApproveResident(c *fiber.Ctx) error {
	resident, err := h.residentInScope(c, c.Params("id"))
	if err != nil {
		return err
	}
	actor, _ := c.Locals("name").(string)
	if err := h.registrationService.ApproveResident(resident.ID, actor); err != nil {
		return response.NotFound(c, "Resident not found")
	}
	return response.Success(c, "Resident approved", nil)
}

// RejectResident rejects a pending resident request
// @Summary Reject resident
// @Description Reject a pending resident registration
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resident ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /management/residents/{id}/reject [post]
func (h *ManagementHandler) RejectResident(c *fiber.Ctx) error {
	resident, err := h.residentInScope(c, c.Params("id"))
	if err != nil {
		return err
	}
	actor, _ := c.Locals("name").(string)
	if err := h.registrationService.RejectResident(resident.ID, actor); err != nil {
		return response.NotFound(c, "Resident not found")
	}
	return response.Success(c, "Resident rejected", nil)
}

// ListStaffRequests returns pending staff requests for a property
// @Summary List pending staff requests
// @Description Returns the PENDING staff account requests for a managed property
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param property query string true "Property name"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /management/staff-requests [get]
func (h *ManagementHandler) ListStaffRequests(c *fiber.Ctx) error {
	propertyName, err := requireProperty(c)
	if err != nil {
		return err
	}
	requests := h.registrationService.PendingStaffRequests(propertyName)
	return response.Success(c, "Staff requests retrieved", requests)
}

// staffRequestInScope loads a staff request and checks the caller
// manages its property
func (h *ManagementHandler) staffRequestInScope(c *fiber.Ctx, id string) (domain.ManagementStaffRequest, error) {
	request, err := h.registrationService.StaffRequestByID(id)
	if err != nil {
		return domain.ManagementStaffRequest{}, response.NotFound(c, "Staff request not found")
	}
	if !middleware.PropertyScope(request.PropertyName, c) {
		return domain.ManagementStaffRequest{}, response.Forbidden(c, "You don't manage this property")
	}
	return request, nil
}

// ApproveStaff approves a staff account request
// @Summary Approve staff request
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /management/staff-requests/{id}/approve [post]
func (h *ManagementHandler) ApproveStaff(c *fiber.Ctx) error {
	request, err := h.staffRequestInScope(c, c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.registrationService.ApproveStaff(request.ID); err != nil {
		return response.NotFound(c, "Staff request not found")
	}
	return response.Success(c, "Staff request approved", nil)
}

// RejectStaff rejects a staff account request
// @Summary Reject staff request
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /management/staff-requests/{id}/reject [post]
func (h *ManagementHandler) RejectStaff(c *fiber.Ctx) error {
	request, err := h.staffRequestInScope(c, c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.registrationService.RejectStaff(request.ID); err != nil {
		return response.NotFound(c, "Staff request not found")
	}
	return response.Success(c, "Staff request rejected", nil)
}

// ListMaintenance returns a property's maintenance requests
// @Summary List maintenance requests
// @Description Returns maintenance requests for a managed property
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param property query string true "Property name"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /management/maintenance [get]
func (h *ManagementHandler) ListMaintenance(c *fiber.Ctx) error {
	propertyName, err := requireProperty(c)
	if err != nil {
		return err
	}
	requests := h.maintenanceService.ListByProperty(propertyName)
	return response.Success(c, "Maintenance requests retrieved", requests)
}

// MaintenanceReviewRequest represents a maintenance review body
type MaintenanceReviewRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

// ReviewMaintenance updates a maintenance request's status
// @Summary Review maintenance request
// @Description Move a maintenance request to a new status with reviewer notes
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body MaintenanceReviewRequest true "Review"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /management/maintenance/{id} [patch]
func (h *ManagementHandler) ReviewMaintenance(c *fiber.Ctx) error {
	var req MaintenanceReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.maintenanceService.Review(
		c.Params("id"), domain.MaintenanceStatus(req.Status), req.AdminNotes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Unknown maintenance status")
		}
		return response.NotFound(c, "Maintenance request not found")
	}
	return response.Success(c, "Maintenance request updated", updated)
}

// ListAlertNotes returns the notes security escalated to management
// @Summary List forwarded alert notes
// @Description Returns alert notes forwarded to property management
// @Tags Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /management/alert-notes [get]
func (h *ManagementHandler) ListAlertNotes(c *fiber.Ctx) error {
	notes := h.alertService.ListForwarded()
	return response.Success(c, "Alert notes retrieved", notes)
}
