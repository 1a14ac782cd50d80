package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/sira-labs/sira-api/internal/models"
)

func TestRegisterAdmin(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/register-admin", "", fiber.Map{
		"username":  "registrar",
		"password":  "sup3rsecret",
		"adminCode": testAdminCode,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRegisterAdminBadCode(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/register-admin", "", fiber.Map{
		"username":  "registrar",
		"password":  "sup3rsecret",
		"adminCode": "WRONG",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegisterAdminShortPassword(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/register-admin", "", fiber.Map{
		"username":  "registrar",
		"password":  "short",
		"adminCode": testAdminCode,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterAdminDuplicate(t *testing.T) {
	app := newTestApp(t)

	payload := fiber.Map{
		"username":  "registrar",
		"password":  "sup3rsecret",
		"adminCode": testAdminCode,
	}
	resp := doJSON(t, app, http.MethodPost, "/auth/register-admin", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/auth/register-admin", "", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	_ = adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"username": "registrar",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"username": "ghost",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginReturnsUser(t *testing.T) {
	app := newTestApp(t)
	_ = adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"username": "registrar",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	decodeBody(t, resp, &payload)
	require.NotEmpty(t, payload.Data.Token)
	require.Equal(t, "registrar", payload.Data.User.Username)
	require.Equal(t, models.RoleAdmin, payload.Data.User.Role)
}

func TestVerify(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodGet, "/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			Role string `json:"role"`
		} `json:"data"`
	}
	decodeBody(t, resp, &payload)
	require.Equal(t, models.RoleAdmin, payload.Data.Role)
}

func TestVerifyMissingToken(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/auth/verify", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyGarbageToken(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/auth/verify", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyDeletedAccount(t *testing.T) {
	app := newTestApp(t)

	// A signed token for an account that was never stored: signature checks
	// out but the verify endpoint consults the credential store.
	token := signedToken(t, "ghost", models.RoleAdmin, time.Hour)

	resp := doJSON(t, app, http.MethodGet, "/auth/verify", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
