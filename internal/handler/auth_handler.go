package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sira-labs/sira-api/internal/dto"
	"github.com/sira-labs/sira-api/internal/service"
	"github.com/sira-labs/sira-api/internal/utils"
)

// AuthHandler wires registration, login and token verification endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the auth routes. Registration and login are public;
// verify runs behind the supplied guard chain (the JWT middleware).
func (h *AuthHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Post("/register-admin", h.registerAdmin)
	router.Post("/login", h.login)
	router.Get("/verify", guarded(guards, h.verify)...)
}

func (h *AuthHandler) registerAdmin(c *fiber.Ctx) error {
	var payload dto.RegisterAdminRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Register(c.Context(), payload); err != nil {
		switch {
		case errors.Is(err, service.ErrBadAdminCode):
			return utils.SendError(c, fiber.StatusForbidden, "invalid admin registration code")
		case errors.Is(err, service.ErrUsernameTaken):
			return utils.SendError(c, fiber.StatusConflict, "username already exists")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to register admin")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register admin")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "admin registered successfully", nil)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to log in")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to log in")
		}
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) verify(c *fiber.Ctx) error {
	username := usernameFromContext(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
	}

	response, err := h.service.Verify(c.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrAccountMissing) {
			return utils.SendError(c, fiber.StatusUnauthorized, "account no longer exists")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to verify token")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to verify token")
	}

	return utils.SendSuccess(c, "token verified", response)
}
