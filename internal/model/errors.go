package model

import (
	"errors"
	"fmt"
)

// ValidationError reports a field constraint violation (length bounds, empty
// title, missing image payload).
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error (including wrapped errors)
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// NotFoundError represents an entity id that does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFoundError constructs NotFoundError
func NewNotFoundError(entity, id string) NotFoundError {
	return NotFoundError{Entity: entity, ID: id}
}

// IsNotFoundError checks if error is NotFoundError
func IsNotFoundError(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

// AuthorizationError means the entity resolved but is not owned by the caller.
type AuthorizationError struct {
	Entity string
	ID     string
}

func (e AuthorizationError) Error() string {
	return fmt.Sprintf("%s %s is not owned by the caller", e.Entity, e.ID)
}

// NewAuthorizationError constructs AuthorizationError
func NewAuthorizationError(entity, id string) AuthorizationError {
	return AuthorizationError{Entity: entity, ID: id}
}

// IsAuthorizationError checks if error is AuthorizationError
func IsAuthorizationError(err error) bool {
	var ae AuthorizationError
	return errors.As(err, &ae)
}

// ConflictError means an optimistic version check failed on write: the entity
// still exists but changed between read and write. Safe to retry by reloading.
type ConflictError struct {
	Entity string
	ID     string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently", e.Entity, e.ID)
}

// NewConflictError constructs ConflictError
func NewConflictError(entity, id string) ConflictError {
	return ConflictError{Entity: entity, ID: id}
}

// IsConflictError checks if error is ConflictError
func IsConflictError(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

// StructuralError reports an attempted deletion of a root or non-empty
// folder. Never cascades.
type StructuralError struct {
	FolderID string
	Reason   string
}

func (e StructuralError) Error() string {
	return fmt.Sprintf("folder %s cannot be deleted: %s", e.FolderID, e.Reason)
}

// NewStructuralError constructs StructuralError
func NewStructuralError(folderID, reason string) StructuralError {
	return StructuralError{FolderID: folderID, Reason: reason}
}

// IsStructuralError checks if error is StructuralError
func IsStructuralError(err error) bool {
	var se StructuralError
	return errors.As(err, &se)
}
