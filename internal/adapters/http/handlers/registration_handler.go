package handlers

import (
	"errors"

	"gatewise-vms/internal/core/domain"
	"gatewise-vms/internal/core/services"
	"gatewise-vms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler handles the public self-registration endpoints
type RegistrationHandler struct {
	registrationService *services.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// registrationError maps the shared registration failures to responses
func registrationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownProperty):
		return response.BadRequest(c, "Property is not an approved community")
	case errors.Is(err, domain.ErrUsernameTaken):
		return response.Conflict(c, "Username is already taken")
	case errors.Is(err, domain.ErrDLNumberTaken):
		return response.Conflict(c, "Driver's license number is already registered")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Missing required fields")
	default:
		return response.InternalServerError(c, "Failed to submit registration")
	}
}

// RegisterResident handles resident self-registration
// @Summary Register resident
// @Description Submit a resident account request for manager approval
// @Tags Registration
// @Accept json
// @Produce json
// @Param body body services.ResidentRegistrationInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register/resident [post]
func (h *RegistrationHandler) RegisterResident(c *fiber.Ctx) error {
	var input services.ResidentRegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if input.FirstName == "" || input.LastName == "" {
		return response.BadRequest(c, "First and last name are required")
	}
	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}
	if input.PropertyName == "" || input.UnitNumber == "" {
		return response.BadRequest(c, "Property and unit number are required")
	}

	resident, err := h.registrationService.RegisterResident(input)
	if err != nil {
		return registrationError(c, err)
	}

	return response.Created(c, "Registration submitted for approval", resident)
}

// RegisterProperty handles property onboarding requests
// @Summary Register property
// @Description Submit a property onboarding request for operator approval
// @Tags Registration
// @Accept json
// @Produce json
// @Param body body services.PropertyRegistrationInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register/property [post]
func (h *RegistrationHandler) RegisterProperty(c *fiber.Ctx) error {
	var input services.PropertyRegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.PropertyName == "" || input.ManagerName == "" {
		return response.BadRequest(c, "Property name and manager name are required")
	}
	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	property, err := h.registrationService.RegisterProperty(input)
	if err != nil {
		return registrationError(c, err)
	}

	return response.Created(c, "Property request submitted for approval", property)
}

// RegisterStaff handles management staff account requests
// @Summary Register management staff
// @Description Submit a staff account request for manager approval
// @Tags Registration
// @Accept json
// @Produce json
// @Param body body services.StaffRegistrationInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register/staff [post]
func (h *RegistrationHandler) RegisterStaff(c *fiber.Ctx) error {
	var input services.StaffRegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FirstName == "" || input.LastName == "" {
		return response.BadRequest(c, "First and last name are required")
	}
	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	staff, err := h.registrationService.RegisterStaff(input)
	if err != nil {
		return registrationError(c, err)
	}

	return response.Created(c, "Staff request submitted for approval", staff)
}

// RegisterOfficer handles security officer account requests
// @Summary Register security officer
// @Description Submit an officer account request for operator approval
// @Tags Registration
// @Accept json
// @Produce json
// @Param body body services.OfficerRegistrationInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register/officer [post]
func (h *RegistrationHandler) RegisterOfficer(c *fiber.Ctx) error {
	var input services.OfficerRegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FirstName == "" || input.LastName == "" {
		return response.BadRequest(c, "First and last name are required")
	}
	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	officer, err := h.registrationService.RegisterOfficer(input)
	if err != nil {
		return registrationError(c, err)
	}

	return response.Created(c, "Officer request submitted for approval", officer)
}

// ApprovedProperties lists approved properties for registration forms
// @Summary List approved properties
// @Description Returns the approved communities residents and staff may register under
// @Tags Registration
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /properties/approved [get]
func (h *RegistrationHandler) ApprovedProperties(c *fiber.Ctx) error {
	properties := h.registrationService.ApprovedProperties()
	return response.Success(c, "Approved properties retrieved", properties)
}
