package models

import "strconv"

// Student is a single student record stored as a Redis hash under
// the key "student:<id>". The id is generated at creation time and is
// not part of the hash itself.
type Student struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Address   string `json:"address"`
	StudentID string `json:"studentId"`
	Course    string `json:"course"`
	YearLevel string `json:"yearLevel"`
	Section   string `json:"section"`
	Major     string `json:"major"`
}

// Hash field names.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldAge       = "age"
	FieldAddress   = "address"
	FieldStudentID = "studentId"
	FieldCourse    = "course"
	FieldYearLevel = "yearLevel"
	FieldSection   = "section"
	FieldMajor     = "major"
)

// HashFields flattens the record into the field map written to the store.
func (s Student) HashFields() map[string]string {
	return map[string]string{
		FieldFirstName: s.FirstName,
		FieldLastName:  s.LastName,
		FieldAge:       strconv.Itoa(s.Age),
		FieldAddress:   s.Address,
		FieldStudentID: s.StudentID,
		FieldCourse:    s.Course,
		FieldYearLevel: s.YearLevel,
		FieldSection:   s.Section,
		FieldMajor:     s.Major,
	}
}

// StudentFromHash rebuilds a record from a stored hash. A malformed age
// field decodes as zero rather than failing the whole read.
func StudentFromHash(id string, fields map[string]string) Student {
	age, _ := strconv.Atoi(fields[FieldAge])

	return Student{
		ID:        id,
		FirstName: fields[FieldFirstName],
		LastName:  fields[FieldLastName],
		Age:       age,
		Address:   fields[FieldAddress],
		StudentID: fields[FieldStudentID],
		Course:    fields[FieldCourse],
		YearLevel: fields[FieldYearLevel],
		Section:   fields[FieldSection],
		Major:     fields[FieldMajor],
	}
}
