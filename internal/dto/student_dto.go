package dto

// StudentCreateRequest carries the full field set required to create a record.
// Age bounds are configuration, so the range check lives in the service.
type StudentCreateRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1"`
	LastName  string `json:"lastName" validate:"required,min=1"`
	Age       int    `json:"age" validate:"required"`
	Address   string `json:"address" validate:"required,min=1"`
	StudentID string `json:"studentId" validate:"required,number"`
	Course    string `json:"course" validate:"required,min=1"`
	YearLevel string `json:"yearLevel" validate:"required,min=1"`
	Section   string `json:"section" validate:"required,min=1"`
	Major     string `json:"major" validate:"required,min=1"`
}

// StudentUpdateRequest captures partial update payloads. Nil means the field
// was not provided and must keep its prior value.
type StudentUpdateRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Age       *int    `json:"age"`
	Address   *string `json:"address" validate:"omitempty,min=1"`
	StudentID *string `json:"studentId" validate:"omitempty,number"`
	Course    *string `json:"course" validate:"omitempty,min=1"`
	YearLevel *string `json:"yearLevel" validate:"omitempty,min=1"`
	Section   *string `json:"section" validate:"omitempty,min=1"`
	Major     *string `json:"major" validate:"omitempty,min=1"`
}

// Empty reports whether no field was provided at all.
func (r StudentUpdateRequest) Empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Age == nil &&
		r.Address == nil && r.StudentID == nil && r.Course == nil &&
		r.YearLevel == nil && r.Section == nil && r.Major == nil
}

// StudentImportRow is one row of a bulk import batch. Rows carry no
// validate tags: each row is turned into a StudentCreateRequest (missing
// columns filled from configured defaults) and validated individually, so
// one bad row fails alone instead of rejecting the batch.
type StudentImportRow struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	StudentID string `json:"studentId"`
	Course    string `json:"course"`
	YearLevel string `json:"yearLevel"`
	Age       int    `json:"age"`
	Address   string `json:"address"`
	Section   string `json:"section"`
	Major     string `json:"major"`
}

// StudentImportRequest wraps a bulk import batch.
type StudentImportRequest struct {
	Students []StudentImportRow `json:"students" validate:"required,min=1"`
}

// StudentImportError reports a single failed row.
type StudentImportError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// StudentImportResult tallies per-row outcomes of a bulk import.
type StudentImportResult struct {
	Imported int                  `json:"imported"`
	Failed   int                  `json:"failed"`
	Errors   []StudentImportError `json:"errors,omitempty"`
}

// DeleteAllResult reports how many records a bulk delete removed.
type DeleteAllResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
