package handlers

import (
	"errors"

	"gatewise-vms/internal/core/domain"
	"gatewise-vms/internal/core/services"
	"gatewise-vms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SecurityHandler handles the security portal endpoints: visitor
// check-in/out, gate verification, pattern alerts and incident notes.
type SecurityHandler struct {
	visitorService     *services.VisitorService
	gateService        *services.GateService
	patternService     *services.PatternService
	alertService       *services.AlertService
	maintenanceService *services.MaintenanceService
}

// NewSecurityHandler creates a new security handler
func NewSecurityHandler(
	visitorService *services.VisitorService,
	gateService *services.GateService,
	patternService *services.PatternService,
	alertService *services.AlertService,
	maintenanceService *services.MaintenanceService,
) *SecurityHandler {
	return &SecurityHandler{
		visitorService:     visitorService,
		gateService:        gateService,
		patternService:     patternService,
		alertService:       alertService,
		maintenanceService: maintenanceService,
	}
}

// CheckInVisitor admits a visitor through the gate
// @Summary Check in a visitor
// @Description Run the gate check-in protocol and open an ACTIVE visit on success
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CheckInInput true "Check-in data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /security/visitors/check-in [post]
func (h *SecurityHandler) CheckInVisitor(c *fiber.Ctx) error {
	var input services.CheckInInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FirstName == "" || input.LastName == "" {
		return response.BadRequest(c, "Visitor first and last name are required")
	}

	visitor, err := h.visitorService.CheckIn(input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoResidentOnFile):
			return response.Error(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrNotAcceptingVisitors):
			return response.Error(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrVisitorNotOnGuestList):
			return response.Error(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Missing required fields")
		default:
			return response.InternalServerError(c, "Failed to check in visitor")
		}
	}

	return response.Created(c, "Visitor checked in", visitor)
}

// CheckOutVisitor closes a visit
// @Summary Check out a visitor
// @Description Stamp the check-out time and close the visit
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Visit ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /security/visitors/{id}/check-out [post]
func (h *SecurityHandler) CheckOutVisitor(c *fiber.Ctx) error {
	visitor, err := h.visitorService.CheckOut(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Visit not found")
	}
	return response.Success(c, "Visitor checked out", visitor)
}

// ListVisitors returns visit records
// @Summary List visitors
// @Description Returns visit records; pass active=true for open visits only
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only ACTIVE visits"
// @Success 200 {object} response.Response
// @Router /security/visitors [get]
func (h *SecurityHandler) ListVisitors(c *fiber.Ctx) error {
	if c.QueryBool("active") {
		return response.Success(c, "Active visitors retrieved", h.visitorService.ActiveVisitors())
	}
	return response.Success(c, "Visitors retrieved", h.visitorService.AllVisitors())
}

// ListOverstayed returns visits past their expiration
// @Summary List overstayed visitors
// @Description Returns ACTIVE visits past their expected check-out time
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /security/visitors/overstayed [get]
func (h *SecurityHandler) ListOverstayed(c *fiber.Ctx) error {
	return response.Success(c, "Overstayed visitors retrieved", h.visitorService.OverstayedVisitors())
}

// GateLookupRequest represents a gate verification query
type GateLookupRequest struct {
	Query        string `json:"query"`
	PropertyName string `json:"property_name"`
}

// GateLookup verifies a returning resident at the gate
// @Summary Gate resident lookup
// @Description Match a QR payload, license number or date of birth to an approved resident of the on-duty property
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GateLookupRequest true "Lookup query"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /security/gate/lookup [post]
func (h *SecurityHandler) GateLookup(c *fiber.Ctx) error {
	var req GateLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Query == "" || req.PropertyName == "" {
		return response.BadRequest(c, "Query and property name are required")
	}

	resident, ok := h.gateService.Lookup(req.Query, req.PropertyName)
	if !ok {
		return response.NotFound(c, "No matching resident on file")
	}
	return response.Success(c, "Resident verified", resident)
}

// LogGateCheckIn records a gate decision in the audit trail
// @Summary Log gate check-in
// @Description Append a GRANTED or DENIED gate decision to the audit log
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.LogCheckInInput true "Gate decision"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /security/gate/log [post]
func (h *SecurityHandler) LogGateCheckIn(c *fiber.Ctx) error {
	var input services.LogCheckInInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Result != domain.GateGranted && input.Result != domain.GateDenied {
		return response.BadRequest(c, "Result must be GRANTED or DENIED")
	}
	if officer, ok := c.Locals("name").(string); ok && input.OfficerName == "" {
		input.OfficerName = officer
	}

	entry := h.gateService.LogCheckIn(input)
	return response.Created(c, "Gate decision logged", entry)
}

// GateLogs returns the gate audit trail
// @Summary List gate check-in logs
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /security/gate/logs [get]
func (h *SecurityHandler) GateLogs(c *fiber.Ctx) error {
	return response.Success(c, "Gate logs retrieved", h.gateService.CheckInLogs())
}

// ConsecutiveAlerts runs the visit pattern detector
// @Summary Consecutive visit alerts
// @Description Flags visitors seen on several consecutive days at the same property
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /security/alerts/consecutive [get]
func (h *SecurityHandler) ConsecutiveAlerts(c *fiber.Ctx) error {
	return response.Success(c, "Pattern alerts computed", h.patternService.ConsecutiveVisitAlerts())
}

// FileAlertNote files a security incident note
// @Summary File alert note
// @Description Record an incident write-up for management review
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AlertNoteInput true "Incident note"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /security/alert-notes [post]
func (h *SecurityHandler) FileAlertNote(c *fiber.Ctx) error {
	var input services.AlertNoteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if officer, ok := c.Locals("name").(string); ok && input.OfficerName == "" {
		input.OfficerName = officer
	}

	note, err := h.alertService.File(input)
	if err != nil {
		return response.BadRequest(c, "Details are required and police_contacted must be YES, NO or NOT_YET")
	}
	return response.Created(c, "Alert note filed", note)
}

// ListAlertNotes returns filed alert notes
// @Summary List alert notes
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter: UNDER_REVIEW only"
// @Success 200 {object} response.Response
// @Router /security/alert-notes [get]
func (h *SecurityHandler) ListAlertNotes(c *fiber.Ctx) error {
	if c.Query("status") == string(domain.AlertUnderReview) {
		return response.Success(c, "Alert notes retrieved", h.alertService.ListUnderReview())
	}
	return response.Success(c, "Alert notes retrieved", h.alertService.ListAll())
}

// AlertTriageRequest represents an alert note triage body
type AlertTriageRequest struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// TriageAlertNote resolves an alert note
// @Summary Triage alert note
// @Description Store the note internally against the resident or dismiss it
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param body body AlertTriageRequest true "Triage decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /security/alert-notes/{id} [patch]
func (h *SecurityHandler) TriageAlertNote(c *fiber.Ctx) error {
	var req AlertTriageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	note, err := h.alertService.Triage(c.Params("id"), domain.AlertNoteStatus(req.Status), req.Details)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Unknown alert note status")
		}
		return response.NotFound(c, "Alert note not found")
	}
	return response.Success(c, "Alert note updated", note)
}

// ReportMaintenance files an infrastructure issue from the gate
// @Summary Report maintenance issue
// @Description File a maintenance issue observed on patrol
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MaintenanceReportInput true "Issue report"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /security/maintenance [post]
func (h *SecurityHandler) ReportMaintenance(c *fiber.Ctx) error {
	var input services.MaintenanceReportInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if officer, ok := c.Locals("name").(string); ok && input.ReportedBy == "" {
		input.ReportedBy = officer
	}

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
