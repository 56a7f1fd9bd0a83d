package cli

import "errors"

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrConfigInvalid = "CONFIG_INVALID"
	ErrSchemaInvalid = "SCHEMA_INVALID"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes.
const (
	WarnFieldRejected    = "FIELD_REJECTED"
	WarnDialectEscalated = "DIALECT_ESCALATED"
)

// errSilent signals failure after the error was already reported.
var errSilent = errors.New("error already reported")

// IsSilent reports whether err was already written to the output.
func IsSilent(err error) bool {
	return errors.Is(err, errSilent)
}
