package errors

import "fmt"

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a not found error with formatted message
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf reports an ID or unique name that is already taken
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates an internal error with formatted message
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// UnknownAbility reports a tag outside str, con, pow, dex, app, siz, int and edu
func UnknownAbility(tag string) *Error {
	return Newf(CodeUnknownAbility, "unknown ability: %q", tag).WithMeta("ability", tag)
}

// InvalidConfigf reports a dice setting or service setting out of bounds
func InvalidConfigf(format string, args ...any) *Error {
	return Newf(CodeInvalidConfig, format, args...)
}

// InvalidImport reports an import document that is missing fields or mistyped
func InvalidImport(message string) *Error {
	return New(CodeInvalidImport, message)
}

// InvalidImportf is InvalidImport with a formatted message
func InvalidImportf(format string, args ...any) *Error {
	return Newf(CodeInvalidImport, format, args...)
}

// VersionConflict reports a taken (owner, name, version) or a lost optimistic transaction
func VersionConflict(message string) *Error {
	return New(CodeVersionConflict, message)
}

// VersionConflictf is VersionConflict with a formatted message
func VersionConflictf(format string, args ...any) *Error {
	return Newf(CodeVersionConflict, format, args...)
}

// CyclicParent reports a parent link that would close a cycle
func CyclicParent(message string) *Error {
	return New(CodeCyclicParent, message)
}

// ImageQuotaExceededf reports a breached image count, size or total size
func ImageQuotaExceededf(format string, args ...any) *Error {
	return Newf(CodeImageQuotaExceeded, format, args...)
}

// SyncDisabled reports a VTT sync request while sync is switched off
func SyncDisabled(message string) *Error {
	return New(CodeSyncDisabled, message)
}

// IOFailure wraps a storage or transport failure. The cause is surfaced unchanged.
func IOFailure(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: CodeIOFailure, Message: message, Cause: err}
}

// IOFailuref is IOFailure with a formatted message
func IOFailuref(err error, format string, args ...any) *Error {
	return IOFailure(err, fmt.Sprintf(format, args...))
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }

// IsUnknownAbility checks if an error is an unknown ability error
func IsUnknownAbility(err error) bool { return GetCode(err) == CodeUnknownAbility }

// IsInvalidConfig checks if an error is an invalid configuration error
func IsInvalidConfig(err error) bool { return GetCode(err) == CodeInvalidConfig }

// IsInvalidImport checks if an error is an invalid import error
func IsInvalidImport(err error) bool { return GetCode(err) == CodeInvalidImport }

// IsVersionConflict checks if an error is a version conflict error
func IsVersionConflict(err error) bool { return GetCode(err) == CodeVersionConflict }

// IsCyclicParent checks if an error is a cyclic parent error
func IsCyclicParent(err error) bool { return GetCode(err) == CodeCyclicParent }

// IsImageQuotaExceeded checks if an error is an image quota error
func IsImageQuotaExceeded(err error) bool { return GetCode(err) == CodeImageQuotaExceeded }

// IsIOFailure checks if an error is a storage or transport failure
func IsIOFailure(err error) bool { return GetCode(err) == CodeIOFailure }

// IsSyncDisabled checks if an error is a sync disabled error
func IsSyncDisabled(err error) bool { return GetCode(err) == CodeSyncDisabled }
