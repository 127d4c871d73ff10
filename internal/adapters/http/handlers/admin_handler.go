package handlers

import (
	"gatewise-vms/internal/core/services"
	"gatewise-vms/internal/pkg/pagination"
	"gatewise-vms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the platform operator endpoints: property and
// officer onboarding plus the credential audit list.
type AdminHandler struct {
	authService         *services.AuthService
	registrationService *services.RegistrationService
	residentService     *services.ResidentService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	authService *services.AuthService,
	registrationService *services.RegistrationService,
	residentService *services.ResidentService,
) *AdminHandler {
	return &AdminHandler{
		authService:         authService,
		registrationService: registrationService,
		residentService:     residentService,
	}
}

// Credentials returns the full credential audit list
// @Summary Credential audit list
// @Description Returns every account's credentials across all collections
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /admin/credentials [get]
func (h *AdminHandler) Credentials(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	entries := h.authService.CredentialAudit()
	page, total := pagination.Slice(entries, params)
	return response.Success(c, "Credentials retrieved", pagination.NewResponse(page, params, total))
}

// ListPropertyRequests returns all property onboarding requests
// @Summary List property requests
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/property-requests [get]
func (h *AdminHandler) ListPropertyRequests(c *fiber.Ctx) error {
	requests := h.registrationService.PropertyRequests()
	return response.Success(c, "Property requests retrieved", requests)
}

// ApproveProperty approves a property onboarding request
// @Summary Approve property request
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/property-requests/{id}/approve [post]
func (h *AdminHandler) ApproveProperty(c *fiber.Ctx) error {
	if err := h.registrationService.ApproveProperty(c.Params("id")); err != nil {
		return response.NotFound(c, "Property request not found")
	}
	return response.Success(c, "Property request approved", nil)
}

// RejectProperty rejects a property onboarding request
// @Summary Reject property request
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/property-requests/{id}/reject [post]
func (h *AdminHandler) RejectProperty(c *fiber.Ctx) error {
	if err := h.registrationService.RejectProperty(c.Params("id")); err != nil {
		return response.NotFound(c, "Property request not found")
	}
	return response.Success(c, "Property request rejected", nil)
}

// ListOfficerRequests returns all officer account requests
// @Summary List officer requests
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/officer-requests [get]
func (h *AdminHandler) ListOfficerRequests(c *fiber.Ctx) error {
	requests := h.registrationService.OfficerRequests()
	return response.Success(c, "Officer requests retrieved", requests)
}

// ApproveOfficer approves an officer account request
// @Summary Approve officer request
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/officer-requests/{id}/approve [post]
func (h *AdminHandler) ApproveOfficer(c *fiber.Ctx) error {
	if err := h.registrationService.ApproveOfficer(c.Params("id")); err != nil {
		return response.NotFound(c, "Officer request not found")
	}
	return response.Success(c, "Officer request approved", nil)
}

// RejectOfficer rejects an officer account request
// @Summary Reject officer request
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/officer-requests/{id}/reject [post]
func (h *AdminHandler) RejectOfficer(c *fiber.Ctx) error {
	if err := h.registrationService.RejectOfficer(c.Params("id")); err != nil {
		return response.NotFound(c, "Officer request not found")
	}
	return response.Success(c, "Officer request rejected", nil)
}

// ListResidents returns every approved resident across properties
// @Summary List approved residents
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /admin/residents [get]
func (h *AdminHandler) ListResidents(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	residents := h.residentService.ListApproved()
	page, total := pagination.Slice(residents, params)
	return response.Success(c, "Residents retrieved", pagination.NewResponse(page, params, total))
}
