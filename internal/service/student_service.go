package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sira-labs/sira-api/internal/config"
	"github.com/sira-labs/sira-api/internal/dto"
	"github.com/sira-labs/sira-api/internal/models"
	"github.com/sira-labs/sira-api/internal/repository"
)

// Student service errors.
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrStudentIDTaken   = errors.New("student id already in use")
	ErrNoFieldsToUpdate = errors.New("at least one field is required to update")
	ErrInvalidField     = errors.New("invalid field")
	ErrNoStudents       = errors.New("no student records found")
)

// StudentService orchestrates student record use cases.
type StudentService interface {
	Create(ctx context.Context, payload dto.StudentCreateRequest) (models.Student, error)
	Get(ctx context.Context, id string) (models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	Update(ctx context.Context, id string, payload dto.StudentUpdateRequest) (models.Student, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Import(ctx context.Context, payload dto.StudentImportRequest) (dto.StudentImportResult, error)
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	rules     config.Validation
	defaults  config.ImportDefaults
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
	mu        sync.Mutex
	lastID    int64
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, rules config.Validation, defaults config.ImportDefaults, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validate,
		rules:     rules,
		defaults:  defaults,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "student_service").Logger(),
		tracer:    otel.Tracer("github.com/sira-labs/sira-api/internal/service/student"),
		now:       time.Now,
	}
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (models.Student, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Student{}, err
	}
	if err := s.checkAge(payload.Age); err != nil {
		return models.Student{}, err
	}

	student := models.Student{
		FirstName: s.cleanText(payload.FirstName),
		LastName:  s.cleanText(payload.LastName),
		Age:       payload.Age,
		Address:   s.cleanText(payload.Address),
		StudentID: strings.TrimSpace(payload.StudentID),
		Course:    s.cleanText(payload.Course),
		YearLevel: s.cleanText(payload.YearLevel),
		Section:   s.cleanText(payload.Section),
		Major:     s.cleanText(payload.Major),
	}
	if err := s.checkCleaned(student); err != nil {
		return models.Student{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "students.create", trace.WithAttributes(
		attribute.String("student.student_id", student.StudentID),
	))
	defer span.End()

	if s.rules.UniqueStudentID {
		taken, err := s.repo.ExistsByStudentID(spanCtx, student.StudentID)
		if err != nil {
			span.RecordError(err)
			return models.Student{}, err
		}
		if taken {
			return models.Student{}, ErrStudentIDTaken
		}
	}

	student.ID = s.nextID()
	if err := s.repo.Save(spanCtx, student); err != nil {
		span.RecordError(err)
		return models.Student{}, err
	}

	s.logger.Info().Str("id", student.ID).Str("student_id", student.StudentID).Msg("student created")
	return student, nil
}

func (s *studentService) Get(ctx context.Context, id string) (models.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return student, nil
}

func (s *studentService) List(ctx context.Context) ([]models.Student, error) {
	return s.repo.List(ctx)
}

func (s *studentService) Update(ctx context.Context, id string, payload dto.StudentUpdateRequest) (models.Student, error) {
	if payload.Empty() {
		return models.Student{}, ErrNoFieldsToUpdate
	}
	if err := s.validator.Struct(payload); err != nil {
		return models.Student{}, err
	}
	if payload.Age != nil {
		if err := s.checkAge(*payload.Age); err != nil {
			return models.Student{}, err
		}
	}

	fields, err := s.updateFields(payload)
	if err != nil {
		return models.Student{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "students.update", trace.WithAttributes(
		attribute.String("student.id", id),
		attribute.Int("student.fields", len(fields)),
	))
	defer span.End()

	if payload.StudentID != nil && s.rules.UniqueStudentID {
		current, err := s.repo.GetByID(spanCtx, id)
		if err != nil {
			if errors.Is(err, repository.ErrStudentNotFound) {
				return models.Student{}, ErrStudentNotFound
			}
			span.RecordError(err)
			return models.Student{}, err
		}
		if current.StudentID != fields[models.FieldStudentID] {
			taken, err := s.repo.ExistsByStudentID(spanCtx, fields[models.FieldStudentID])
			if err != nil {
				span.RecordError(err)
				return models.Student{}, err
			}
			if taken {
				return models.Student{}, ErrStudentIDTaken
			}
		}
	}

	if err := s.repo.SetFields(spanCtx, id, fields); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		span.RecordError(err)
		return models.Student{}, err
	}

	student, err := s.repo.GetByID(spanCtx, id)
	if err != nil {
		span.RecordError(err)
		return models.Student{}, err
	}

	s.logger.Info().Str("id", id).Int("fields", len(fields)).Msg("student updated")
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	spanCtx, span := s.tracer.Start(ctx, "students.delete", trace.WithAttributes(
		attribute.String("student.id", id),
	))
	defer span.End()

	if err := s.repo.Delete(spanCtx, id); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return ErrStudentNotFound
		}
		span.RecordError(err)
		return err
	}

	s.logger.Info().Str("id", id).Msg("student deleted")
	return nil
}

func (s *studentService) DeleteAll(ctx context.Context) (int64, error) {
	spanCtx, span := s.tracer.Start(ctx, "students.delete_all")
	defer span.End()

	deleted, err := s.repo.DeleteAll(spanCtx)
	if err != nil {
		span.RecordError(err)
		return deleted, err
	}
	if deleted == 0 {
		return 0, ErrNoStudents
	}

	s.logger.Info().Int64("deleted", deleted).Msg("all students deleted")
	return deleted, nil
}

// Import creates each row independently. A row failing validation or a
// uniqueness check is counted and reported without blocking the rest.
func (s *studentService) Import(ctx context.Context, payload dto.StudentImportRequest) (dto.StudentImportResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentImportResult{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "students.import", trace.WithAttributes(
		attribute.Int("import.rows", len(payload.Students)),
	))
	defer span.End()

	result := dto.StudentImportResult{}
	for index, row := range payload.Students {
		if _, err := s.Create(spanCtx, s.applyDefaults(row)); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.StudentImportError{
				Index:   index,
				Message: err.Error(),
			})
			continue
		}
		result.Imported++
	}

	s.logger.Info().Int("imported", result.Imported).Int("failed", result.Failed).Msg("import completed")
	return result, nil
}

func (s *studentService) applyDefaults(row dto.StudentImportRow) dto.StudentCreateRequest {
	request := dto.StudentCreateRequest{
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Age:       row.Age,
		Address:   row.Address,
		StudentID: row.StudentID,
		Course:    row.Course,
		YearLevel: row.YearLevel,
		Section:   row.Section,
		Major:     row.Major,
	}

	if request.Age == 0 {
		request.Age = s.defaults.Age
	}
	if strings.TrimSpace(request.Address) == "" {
		request.Address = s.defaults.Address
	}
	if strings.TrimSpace(request.Section) == "" {
		request.Section = s.defaults.Section
	}
	if strings.TrimSpace(request.Major) == "" {
		request.Major = s.defaults.Major
	}
	if strings.TrimSpace(request.YearLevel) == "" {
		request.YearLevel = s.defaults.YearLevel
	}

	return request
}

func (s *studentService) updateFields(payload dto.StudentUpdateRequest) (map[string]string, error) {
	fields := make(map[string]string)

	set := func(name string, value *string, sanitize bool) error {
		if value == nil {
			return nil
		}
		cleaned := strings.TrimSpace(*value)
		if sanitize {
			cleaned = s.cleanText(*value)
		}
		if cleaned == "" {
			return fmt.Errorf("%w: %s empty after sanitization", ErrInvalidField, name)
		}
		fields[name] = cleaned
		return nil
	}

	if err := set(models.FieldFirstName, payload.FirstName, true); err != nil {
		return nil, err
	}
	if err := set(models.FieldLastName, payload.LastName, true); err != nil {
		return nil, err
	}
	if err := set(models.FieldAddress, payload.Address, true); err != nil {
		return nil, err
	}
	if err := set(models.FieldStudentID, payload.StudentID, false); err != nil {
		return nil, err
	}
	if err := set(models.FieldCourse, payload.Course, true); err != nil {
		return nil, err
	}
	if err := set(models.FieldYearLevel, payload.YearLevel, true); err != nil {
		return nil, err
	}
	if err := set(models.FieldSection, payload.Section, true); err != nil {
		return nil, err
	}
	if payload.Age != nil {
		fields[models.FieldAge] = strconv.Itoa(*payload.Age)
	}
	if err := set(models.FieldMajor, payload.Major, true); err != nil {
		return nil, err
	}

	return fields, nil
}

func (s *studentService) checkAge(age int) error {
	return s.validator.Var(age, fmt.Sprintf("gte=%d,lte=%d", s.rules.AgeMin, s.rules.AgeMax))
}

func (s *studentService) checkCleaned(student models.Student) error {
	required := map[string]string{
		models.FieldFirstName: student.FirstName,
		models.FieldLastName:  student.LastName,
		models.FieldAddress:   student.Address,
		models.FieldStudentID: student.StudentID,
		models.FieldCourse:    student.Course,
		models.FieldYearLevel: student.YearLevel,
		models.FieldSection:   student.Section,
		models.FieldMajor:     student.Major,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s empty after sanitization", ErrInvalidField, name)
		}
	}
	return nil
}

func (s *studentService) cleanText(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

// nextID derives an id from the creation instant in unix milliseconds with a
// per-process monotonic tiebreak, so two creations in the same millisecond
// never collide.
func (s *studentService) nextID() string {
	now := s.now().UnixMilli()

	s.mu.Lock()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	s.mu.Unlock()

	return strconv.FormatInt(now, 10)
}
