package gdalkit

import (
	"fmt"
	"sync"
)

// ErrorCategory wraps GDAL's error classes
type ErrorCategory int

const (
	// CE_None is not an error
	CE_None = ErrorCategory(0)
	// CE_Debug is a debug level
	CE_Debug = ErrorCategory(1)
	// CE_Warning is a warning levele
	CE_Warning = ErrorCategory(2)
	// CE_Failure is an error
	CE_Failure = ErrorCategory(3)
	// CE_Fatal is an unrecoverable error
	CE_Fatal = ErrorCategory(4)
)

func (ec ErrorCategory) String() string {
	switch ec {
	case CE_None:
		return "None"
	case CE_Debug:
		return "Debug"
	case CE_Warning:
		return "Warning"
	case CE_Failure:
		return "Failure"
	case CE_Fatal:
		return "Fatal"
	}
	return "Unknown"
}

// ErrorCategoryFromInt converts a raw error class to an ErrorCategory. Values
// outside 0-4 fall back to CE_None.
func ErrorCategoryFromInt(ec int) ErrorCategory {
	if ec < 0 || ec > int(CE_Fatal) {
		return CE_None
	}
	return ErrorCategory(ec)
}

var errorHandlerMu sync.Mutex
var errorHandlerIndex int

// ErrorHandler is a function that can be used to override gdalkit's default
// behavior of treating all diagnostics with severity >= CE_Warning as errors.
// Once registered with SetErrorHandler, all diagnostics raised through
// RaiseError are passed to this function, which can decide wether the
// parameters correspond to an actual error or not.
//
// If the ErrorHandler returns nil, the diagnostic is suppressed and RaiseError
// will not return an error. It is up to the ErrorHandler to log the message
// if needed.
//
// If the ErrorHandler returns an error, that error will be returned as-is to
// the caller of RaiseError
type ErrorHandler func(ec ErrorCategory, code int, msg string) error

var errorHandlers = make(map[int]ErrorHandler)

// SetErrorHandler registers fn and returns a handle that can be passed to
// RemoveErrorHandler
func SetErrorHandler(fn ErrorHandler) int {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	errorHandlerIndex++
	for errorHandlerIndex == 0 || errorHandlers[errorHandlerIndex] != nil {
		errorHandlerIndex++
	}
	errorHandlers[errorHandlerIndex] = fn
	return errorHandlerIndex
}

// RemoveErrorHandler unregisters the handler returned by SetErrorHandler
func RemoveErrorHandler(handle int) {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	delete(errorHandlers, handle)
}

func snapshotErrorHandlers() []ErrorHandler {
	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()
	hs := make([]ErrorHandler, 0, len(errorHandlers))
	for _, h := range errorHandlers {
		hs = append(hs, h)
	}
	return hs
}

var lastErrorMu sync.Mutex
var lastError struct {
	no  int
	typ ErrorCategory
	msg string
}

// RaiseError reports a diagnostic. The diagnostic is first submitted to all
// registered ErrorHandlers: if any of them returns nil the diagnostic is
// suppressed, otherwise the first handler error is returned as-is. Without
// handlers, diagnostics of severity >= CE_Warning are returned as errors.
// In both cases a returned diagnostic of severity >= CE_Warning is recorded
// as the last error.
func RaiseError(ec ErrorCategory, code int, msg string) error {
	var handlerErr error
	for _, h := range snapshotErrorHandlers() {
		err := h(ec, code, msg)
		if err == nil {
			return nil
		}
		if handlerErr == nil {
			handlerErr = err
		}
	}
	if handlerErr == nil && ec < CE_Warning {
		return nil
	}
	if ec >= CE_Warning {
		lastErrorMu.Lock()
		lastError.no = code
		lastError.typ = ec
		lastError.msg = msg
		lastErrorMu.Unlock()
	}
	if handlerErr != nil {
		return handlerErr
	}
	return fmt.Errorf("%s %d: %s", ec, code, msg)
}

// ErrorReset erases any traces of previous errors
func ErrorReset() {
	lastErrorMu.Lock()
	lastError.no = 0
	lastError.typ = CE_None
	lastError.msg = ""
	lastErrorMu.Unlock()
}

// LastErrorNo returns the code of the last recorded error
func LastErrorNo() int {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError.no
}

// LastErrorType returns the category of the last recorded error
func LastErrorType() ErrorCategory {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError.typ
}

// LastErrorMsg returns the message of the last recorded error
func LastErrorMsg() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError.msg
}
