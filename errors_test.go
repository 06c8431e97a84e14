package gdalkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategoryFromInt(t *testing.T) {
	assert.Equal(t, CE_None, ErrorCategoryFromInt(0))
	assert.Equal(t, CE_Warning, ErrorCategoryFromInt(2))
	assert.Equal(t, CE_Fatal, ErrorCategoryFromInt(4))
	// out of range classes fall back to CE_None
	assert.Equal(t, CE_None, ErrorCategoryFromInt(5))
	assert.Equal(t, CE_None, ErrorCategoryFromInt(-1))
	assert.Equal(t, "Failure", CE_Failure.String())
}

func TestRaiseError(t *testing.T) {
	ErrorReset()
	err := RaiseError(CE_Failure, 42, "boom")
	assert.Error(t, err)
	assert.Equal(t, 42, LastErrorNo())
	assert.Equal(t, CE_Failure, LastErrorType())
	assert.Equal(t, "boom", LastErrorMsg())

	// debug diagnostics are not recorded
	assert.NoError(t, RaiseError(CE_Debug, 1, "dbg"))
	assert.Equal(t, 42, LastErrorNo())

	ErrorReset()
	assert.Equal(t, 0, LastErrorNo())
	assert.Equal(t, CE_None, LastErrorType())
	assert.Equal(t, "", LastErrorMsg())
}

func TestErrorHandlers(t *testing.T) {
	ErrorReset()
	seen := 0
	h := SetErrorHandler(func(ec ErrorCategory, code int, msg string) error {
		seen++
		if ec < CE_Failure {
			return nil
		}
		return errors.New(msg)
	})
	defer RemoveErrorHandler(h)

	// handler swallows warnings
	assert.NoError(t, RaiseError(CE_Warning, 7, "just a warning"))
	assert.Equal(t, 1, seen)
	assert.Equal(t, 0, LastErrorNo())

	err := RaiseError(CE_Failure, 8, "real error")
	assert.Error(t, err)
	assert.Equal(t, 2, seen)
	assert.Equal(t, 8, LastErrorNo())

	RemoveErrorHandler(h)
	assert.Error(t, RaiseError(CE_Warning, 9, "warning again"))
	if seen != 2 {
		t.Errorf("handler called after removal")
	}
}

func TestErrorHandlerErrorsPropagate(t *testing.T) {
	ErrorReset()
	sentinel := errors.New("sentinel")
	h := SetErrorHandler(func(ec ErrorCategory, code int, msg string) error {
		return fmt.Errorf("handler saw %q: %w", msg, sentinel)
	})
	defer RemoveErrorHandler(h)

	err := RaiseError(CE_Failure, 1, "boom")
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, LastErrorNo())

	// the handler error is returned even for low severity diagnostics, but
	// those are not recorded
	ErrorReset()
	err = RaiseError(CE_Debug, 2, "dbg")
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 0, LastErrorNo())
}

func TestErrorHandlerHandles(t *testing.T) {
	nop := func(ec ErrorCategory, code int, msg string) error { return errors.New(msg) }
	h1 := SetErrorHandler(nop)
	h2 := SetErrorHandler(nop)
	assert.NotEqual(t, h1, h2)
	RemoveErrorHandler(h1)
	RemoveErrorHandler(h2)
}
