package services

import (
	"testing"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/config"
	"gatewise-vms/internal/core/domain"
	"gatewise-vms/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := password.Hash("operator-secret")
	require.NoError(t, err)
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Policy: testPolicy(),
		Admin: config.AdminConfig{
			Username:     "gatewise-admin",
			PasswordHash: hash,
		},
	}
}

func seedPM(store *memstore.Directory) {
	store.InsertPropertyRequest(domain.PropertyRequest{
		ID:           "prop-1",
		PropertyName: "Casa de Esperanza",
		ManagerName:  "Pat Manager",
		Status:       domain.StatusApproved,
		Credentials:  domain.Credentials{Username: "user", Password: "pass"},
	})
	store.InsertPropertyRequest(domain.PropertyRequest{
		ID:           "prop-2",
		PropertyName: "Casa de Los Sueños",
		ManagerName:  "Pat Manager",
		Status:       domain.StatusApproved,
		Credentials:  domain.Credentials{Username: "user", Password: "pass"},
	})
}

func TestAuthService_LoginResident(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewAuthService(store, testConfig(t))

	resp, err := svc.LoginResident(domain.Credentials{Username: "MariaGarcia", Password: "MariaGarcia"})
	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.UserID)
	assert.Equal(t, domain.RoleResident, resp.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	_, err = svc.LoginResident(domain.Credentials{Username: "MariaGarcia", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_LoginResident_PendingRefused(t *testing.T) {
	store, _ := newStoreWithResident(t, func(r *domain.ResidentProfile) {
		r.Status = domain.StatusPending
	})
	svc := NewAuthService(store, testConfig(t))

	_, err := svc.LoginResident(domain.Credentials{Username: "MariaGarcia", Password: "MariaGarcia"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_LoginPM_MultiProperty(t *testing.T) {
	store := memstore.New()
	seedPM(store)
	svc := NewAuthService(store, testConfig(t))

	resp, err := svc.LoginPM(domain.Credentials{Username: "user", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, domain.RolePM, resp.Role)
	// Shared credentials resolve to the full managed set
	require.Len(t, resp.Properties, 2)
	names := []string{resp.Properties[0].PropertyName, resp.Properties[1].PropertyName}
	assert.Contains(t, names, "Casa de Esperanza")
	assert.Contains(t, names, "Casa de Los Sueños")
}

func TestAuthService_LoginAdmin(t *testing.T) {
	store := memstore.New()
	svc := NewAuthService(store, testConfig(t))

	resp, err := svc.LoginAdmin(domain.Credentials{Username: "gatewise-admin", Password: "operator-secret"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, resp.Role)

	_, err = svc.LoginAdmin(domain.Credentials{Username: "gatewise-admin", Password: "bad"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewAuthService(store, testConfig(t))

	login, err := svc.LoginResident(domain.Credentials{Username: "MariaGarcia", Password: "MariaGarcia"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "res-1", refreshed.UserID)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked on rotation
	_, err = svc.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// The new one still works
	_, err = svc.Refresh(refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_RefreshRefusedAfterRejection(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewAuthService(store, testConfig(t))

	login, err := svc.LoginResident(domain.Credentials{Username: "MariaGarcia", Password: "MariaGarcia"})
	require.NoError(t, err)

	// A rejection applied after login must stop refresh
	store.SetResidentStatus("res-1", domain.StatusRejected)

	_, err = svc.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshRejectsGarbage(t *testing.T) {
	store := memstore.New()
	svc := NewAuthService(store, testConfig(t))

	_, err := svc.Refresh("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestAuthService_LogoutAll(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewAuthService(store, testConfig(t))

	first, err := svc.LoginResident(domain.Credentials{Username: "MariaGarcia", Password: "MariaGarcia"})
	require.NoError(t, err)
	_, err = svc.LoginResident(domain.Credentials{Username: "MariaGarcia", Password: "MariaGarcia"})
	require.NoError(t, err)

	revoked := svc.LogoutAll("res-1")
	assert.Equal(t, 2, revoked)

	_, err = svc.Refresh(first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}
