package redis

import (
	"github.com/KirkDiggler/coc-api/internal/errors"
)

// WrapError maps a go-redis failure onto the engine's error codes. Coded
// errors raised inside a Watch callback pass through untouched, a lost
// optimistic transaction becomes VersionConflict and anything else is an
// IOFailure. Nothing is retried here.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}

	var coded *errors.Error
	if errors.As(err, &coded) {
		return coded
	}
	if IsTxFailed(err) {
		return errors.VersionConflictf("%s: concurrent modification", message)
	}
	return errors.IOFailure(err, message)
}
