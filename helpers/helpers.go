// Package helpers contains small stateless utilities used by the demo tests: generated
// form input, name formatting, email validation, and link harvesting.
package helpers

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// GenerateRandomEmail returns an address based on the current time in milliseconds. Two
// calls within the same millisecond return the same address.
func GenerateRandomEmail() string {
	return fmt.Sprintf("test%d@example.com", time.Now().UnixMilli())
}

func GenerateRandomName() string {
	return fmt.Sprintf("TestUser%d", rand.Intn(10000))
}

// FormatTestCaseName replaces each run of whitespace with a single underscore and lower-cases
// the result, making it usable as part of a file name.
func FormatTestCaseName(name string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(name, "_"))
}

// Delay waits for d, or until ctx is done, whichever comes first.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
