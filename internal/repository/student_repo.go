package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/sira-labs/sira-api/internal/models"
)

const studentKeyPrefix = "student:"

// ErrStudentNotFound indicates the requested record id does not exist.
var ErrStudentNotFound = errors.New("student not found")

// StudentRepository exposes hash-based persistence for student records.
type StudentRepository interface {
	Save(ctx context.Context, student models.Student) error
	SetFields(ctx context.Context, id string, fields map[string]string) error
	GetByID(ctx context.Context, id string) (models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type studentRepository struct {
	client *redis.Client
}

// NewStudentRepository constructs the Redis-backed student repository.
func NewStudentRepository(client *redis.Client) StudentRepository {
	return &studentRepository{client: client}
}

func studentKey(id string) string {
	return studentKeyPrefix + id
}

// Save writes the whole record as a single HSET so readers never observe a
// partially written hash.
func (r *studentRepository) Save(ctx context.Context, student models.Student) error {
	if err := r.client.HSet(ctx, studentKey(student.ID), student.HashFields()).Err(); err != nil {
		return fmt.Errorf("failed to save student %s: %w", student.ID, err)
	}
	return nil
}

// SetFields merges the provided fields into an existing record, again as one
// HSET. The record must already exist.
func (r *studentRepository) SetFields(ctx context.Context, id string, fields map[string]string) error {
	key := studentKey(id)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check student %s: %w", id, err)
	}
	if exists == 0 {
		return ErrStudentNotFound
	}

	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("failed to update student %s: %w", id, err)
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (models.Student, error) {
	fields, err := r.client.HGetAll(ctx, studentKey(id)).Result()
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to fetch student %s: %w", id, err)
	}
	if len(fields) == 0 {
		return models.Student{}, ErrStudentNotFound
	}

	return models.StudentFromHash(id, fields), nil
}

// List enumerates every record via SCAN. Enumeration order is whatever the
// store yields; callers must not rely on it.
func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	students := make([]models.Student, 0, len(keys))
	for _, key := range keys {
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", key, err)
		}
		if len(fields) == 0 {
			// Deleted between SCAN and HGETALL.
			continue
		}
		students = append(students, models.StudentFromHash(strings.TrimPrefix(key, studentKeyPrefix), fields))
	}

	return students, nil
}

// ExistsByStudentID reports whether any record already carries the given
// studentId value. Full scan; acceptable at this data scale.
func (r *studentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return false, err
	}

	for _, key := range keys {
		value, err := r.client.HGet(ctx, key, models.FieldStudentID).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return false, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if value == studentID {
			return true, nil
		}
	}

	return false, nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, studentKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete student %s: %w", id, err)
	}
	if deleted == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// DeleteAll removes every student key and returns how many were removed.
// Each DEL is independent; a failure on one key does not roll back the rest.
func (r *studentRepository) DeleteAll(ctx context.Context) (int64, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	var deleted int64
	for _, key := range keys {
		count, err := r.client.Del(ctx, key).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete %s: %w", key, err)
		}
		deleted += count
	}

	return deleted, nil
}

func (r *studentRepository) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string

	iter := r.client.Scan(ctx, 0, studentKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan student keys: %w", err)
	}

	return keys, nil
}
