package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sira-labs/sira-api/internal/config"
	"github.com/sira-labs/sira-api/internal/handler"
	"github.com/sira-labs/sira-api/internal/middleware"
	"github.com/sira-labs/sira-api/internal/repository"
	"github.com/sira-labs/sira-api/internal/router"
	"github.com/sira-labs/sira-api/internal/service"
)

const (
	testSecret    = "handler-test-secret"
	testAdminCode = "ADMIN123"
)

func testConfig() config.Config {
	return config.Config{
		AppName:   "SIRA API",
		AppEnv:    "test",
		AppPort:   "0",
		JWTSecret: testSecret,
		JWTTTL:    time.Hour,
		AdminCode: testAdminCode,
		Validation: config.Validation{
			AgeMin:          16,
			AgeMax:          100,
			UniqueStudentID: true,
		},
		ImportDefaults: config.ImportDefaults{
			Age:       20,
			Address:   "Default Address",
			Section:   "A",
			Major:     "General",
			YearLevel: "1st Year",
		},
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig()
	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.Nop()

	studentRepo := repository.NewStudentRepository(client)
	credentialRepo := repository.NewCredentialRepository(client)

	studentService := service.NewStudentService(studentRepo, validate, cfg.Validation, cfg.ImportDefaults, logger)
	authService := service.NewAuthService(credentialRepo, validate, cfg.JWTSecret, cfg.AdminCode, cfg.JWTTTL, logger)
	analyticsService := service.NewAnalyticsService(studentRepo, logger)

	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:      handler.NewAuthHandler(authService, logger),
		StudentHandler:   handler.NewStudentHandler(studentService, logger),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService, logger),
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// adminToken registers and logs in an admin through the API and returns the
// issued bearer token.
func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/auth/register-admin", "", fiber.Map{
		"username":  "registrar",
		"password":  "sup3rsecret",
		"adminCode": testAdminCode,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"username": "registrar",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	decodeBody(t, resp, &payload)
	require.NotEmpty(t, payload.Data.Token)

	return payload.Data.Token
}

// signedToken mints a token directly, bypassing the login flow, so tests can
// exercise role and expiry edge cases.
func signedToken(t *testing.T, username, role string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func studentPayload() fiber.Map {
	return fiber.Map{
		"firstName": "Ana",
		"lastName":  "Reyes",
		"age":       19,
		"address":   "Quezon City",
		"studentId": "2021001",
		"course":    "BSCS",
		"yearLevel": "2nd Year",
		"section":   "A",
		"major":     "Software Engineering",
	}
}
