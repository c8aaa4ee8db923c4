package optimizer

import (
	"errors"
	"fmt"
)

// Error codes distinguishing caller misuse from staleness.
const (
	CodeSuggestionNotFound = "suggestionNotFound"
	CodeAlreadyReviewed    = "alreadyReviewed"
	CodeNotAccepted        = "notAccepted"
	CodeSlotTaken          = "slotTaken"
)

type OptimizeError struct {
	Code    string
	Message string
}

func (e *OptimizeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewOptimizeError(code, msg string) error {
	return &OptimizeError{
		Code:    code,
		Message: msg,
	}
}

// ErrCode returns the optimize error code, or "" for other errors.
func ErrCode(err error) string {
	var oe *OptimizeError
	if errors.As(err, &oe) {
		return oe.Code
	}
	return ""
}
