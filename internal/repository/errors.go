package repository

import (
	"errors"
	"strings"
)

// Common repository errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// isForeignKeyError checks if the error is a foreign key constraint violation
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "foreign key") ||
		strings.Contains(errStr, "FOREIGN KEY") ||
		strings.Contains(errStr, "23503") // PostgreSQL foreign key violation code
}
