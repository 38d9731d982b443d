package types

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrPositionNotFound = errors.New("position not found")
	ErrRecordNotFound   = errors.New("record not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCompanyExists    = errors.New("company already exists")
	ErrNotContributor   = errors.New("contribute a review, salary or interview first")
	ErrNotStaff         = errors.New("staff access required")
	ErrUnknownItemKind  = errors.New("unknown item kind")
)

// Form names used as keys of ValidationError.
const (
	FormPrimary  = "primary"
	FormPosition = "position"
	FormCompany  = "company"
)

// FieldErrors maps a field name to the reason it was rejected.
type FieldErrors map[string]string

// ValidationError collects field errors for every form of a request.
type ValidationError struct {
	Forms map[string]FieldErrors `json:"forms"`
}

// NewValidationError creates an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Forms: make(map[string]FieldErrors)}
}

// Add records the field errors of one form. Empty maps are ignored.
func (e *ValidationError) Add(form string, fields FieldErrors) {
	if len(fields) == 0 {
		return
	}
	if existing, ok := e.Forms[form]; ok {
		maps.Copy(existing, fields)
		return
	}
	e.Forms[form] = fields
}

// HasErrors reports whether any form failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Forms) > 0
}

// OrNil returns e when it holds errors and nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Forms))
	for _, form := range slices.Sorted(maps.Keys(e.Forms)) {
		fields := e.Forms[form]
		for _, field := range slices.Sorted(maps.Keys(fields)) {
			parts = append(parts, fmt.Sprintf("%s.%s: %s", form, field, fields[field]))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError is returned when a company name or website is already taken.
// Existing lists the companies holding them.
type ConflictError struct {
	Existing []*Company
}

func (e *ConflictError) Error() string {
	names := make([]string, 0, len(e.Existing))
	for _, company := range e.Existing {
		names = append(names, company.Name)
	}
	if len(names) == 0 {
		return ErrCompanyExists.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCompanyExists, strings.Join(names, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrCompanyExists
}
