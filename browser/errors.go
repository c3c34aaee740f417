package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ErrTimeout is wrapped by every error returned because a wait, action, or navigation ran
// out of time.
var ErrTimeout = errors.New("timed out")

// IsTimeout reports whether err was caused by something not happening in time.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, playwright.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pwErr *playwright.Error
	if errors.As(err, &pwErr) && pwErr.Name == "TimeoutError" {
		return true
	}
	return strings.HasPrefix(err.Error(), "TimeoutError:")
}

func wrapError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsTimeout(err) {
		return fmt.Errorf("%s: %w (%s)", operation, ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
