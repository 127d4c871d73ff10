package handlers

import (
	"net/http/httptest"
	"testing"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"
	"gatewise-vms/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newManagementApp wires the management handler behind a stub auth
// context carrying a PM token scoped to the given properties.
func newManagementApp(store *memstore.Directory, managedProperties []string) *fiber.App {
	h := NewManagementHandler(
		services.NewResidentService(store),
		services.NewRegistrationService(store),
		services.NewMaintenanceService(store),
		services.NewAlertService(store),
	)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", "pm-1")
		c.Locals("name", "Pat Manager")
		c.Locals("role", string(domain.RolePM))
		c.Locals("properties", managedProperties)
		return c.Next()
	})
	app.Post("/management/staff-requests/:id/approve", h.ApproveStaff)
	app.Post("/management/staff-requests/:id/reject", h.RejectStaff)
	return app
}

func TestManagementHandler_StaffApproval_PropertyScoped(t *testing.T) {
	store := memstore.New()
	st := store.InsertStaffRequest(domain.ManagementStaffRequest{
		PropertyName: "Casa de Los Sueños",
		FirstName:    "Ana", LastName: "Luna",
		Status:      domain.StatusPending,
		Credentials: domain.Credentials{Username: "analuna", Password: "analuna"},
	})

	// A PM who only manages Casa de Esperanza cannot touch the request
	app := newManagementApp(store, []string{"Casa de Esperanza"})

	resp, err := app.Test(httptest.NewRequest("POST", "/management/staff-requests/"+st.ID+"/approve", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	got, ok := store.StaffRequestByID(st.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, got.Status, "out-of-scope approval must not be applied")

	resp, err = app.Test(httptest.NewRequest("POST", "/management/staff-requests/"+st.ID+"/reject", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// The managing PM approves it
	app = newManagementApp(store, []string{"Casa de Los Sueños"})
	resp, err = app.Test(httptest.NewRequest("POST", "/management/staff-requests/"+st.ID+"/approve", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	got, ok = store.StaffRequestByID(st.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusApproved, got.Status)

	// Unknown ids stay a 404
	resp, err = app.Test(httptest.NewRequest("POST", "/management/staff-requests/staff-missing/approve", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
