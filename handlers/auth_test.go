package handlers_test

import (
	"net/http"
	"testing"

	"quickbite/config"
	"quickbite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "POST", "/api/auth/register", "", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "secret123", "role": "customer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])

	// Duplicate email
	w = doJSON(r, "POST", "/api/auth/register", "", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "secret123", "role": "customer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "POST", "/api/auth/login", "", map[string]any{
		"email": "ada@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", "/api/auth/login", "", map[string]any{
		"email": "ada@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, "POST", "/api/auth/register", "", map[string]any{
		"name": "Eve", "email": "eve@example.com", "password": "secret123", "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_DeactivatedAccountRejected(t *testing.T) {
	r := setupRouter(t)
	user, _ := newUser(t, models.RoleCustomer)
	require.NoError(t, config.DB.Model(user).Update("is_active", false).Error)

	w := doJSON(r, "POST", "/api/auth/login", "", map[string]any{
		"email": user.Email, "password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "GET", "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "GET", "/api/users/me", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGate_CustomerOnlyEndpoints(t *testing.T) {
	r := setupRouter(t)
	_, ownerToken := newUser(t, models.RoleOwner)

	// An owner cannot touch the cart surface
	w := doJSON(r, "GET", "/api/cart", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
