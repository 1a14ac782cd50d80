package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sira-labs/sira-api/internal/dto"
	"github.com/sira-labs/sira-api/internal/service"
	"github.com/sira-labs/sira-api/internal/utils"
)

// StudentHandler wires the student record endpoints.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the student routes. Reads are public; each mutation
// route carries the supplied guard chain so the guards never shadow the
// unauthenticated GETs. The "/all" route must sit before "/:id" so bulk
// delete is not captured as an id.
func (h *StudentHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("", h.list)
	router.Post("", guarded(guards, h.create)...)
	router.Post("/import", guarded(guards, h.importBatch)...)
	router.Delete("/all", guarded(guards, h.deleteAll)...)
	router.Get("/:id", h.get)
	router.Put("/:id", guarded(guards, h.update)...)
	router.Delete("/:id", guarded(guards, h.delete)...)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	student, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch student")
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentIDTaken):
			return utils.SendError(c, fiber.StatusConflict, "student id already in use")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to save student")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save student")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student saved successfully", student)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	var payload dto.StudentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			return utils.SendError(c, fiber.StatusBadRequest, "at least one field is required to update")
		case errors.Is(err, service.ErrStudentIDTaken):
			return utils.SendError(c, fiber.StatusConflict, "student id already in use")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update student")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update student")
		}
	}

	return utils.SendSuccess(c, "student updated successfully", student)
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete student")
	}

	return utils.SendSuccess(c, "student deleted successfully", fiber.Map{"id": id})
}

func (h *StudentHandler) deleteAll(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteAll(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoStudents) {
			return utils.SendError(c, fiber.StatusNotFound, "no student records found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete all students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete all students")
	}

	return utils.SendSuccess(c, "all student records deleted successfully", dto.DeleteAllResult{DeletedCount: deleted})
}

func (h *StudentHandler) importBatch(c *fiber.Ctx) error {
	var payload dto.StudentImportRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Import(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to import students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to import students")
	}

	return utils.SendSuccess(c, "import completed", result)
}
