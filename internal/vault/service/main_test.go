package service

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain fails the package if any test leaks a goroutine, which keeps the
// session store janitor honest about Stop().
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
