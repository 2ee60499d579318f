package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema marks roster uploads whose required columns are missing.
	ErrSchema = errors.New("schema error")
	// ErrValidation marks stage submissions that failed record validation.
	ErrValidation = errors.New("validation error")
	// ErrStorage marks failures persisting artifacts or stage records.
	ErrStorage = errors.New("storage error")
	// ErrPrecondition marks requests whose prerequisite stage data is absent.
	ErrPrecondition = errors.New("precondition error")
	// ErrNotFound marks lookups for records or artifacts that do not exist.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrStorage
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsRecoverable reports whether the caller can fix the request and resubmit
// without operator intervention.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrPrecondition)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
