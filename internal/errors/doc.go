// Package errors provides the coded errors used across coc-api.
//
// Every failure that crosses a layer is an *Error carrying a Code, a message
// that is safe to show to callers, an optional Cause for logs, and optional
// metadata such as the sheet ID involved.
//
// # Creating and wrapping
//
//	return errors.NotFoundf("sheet %s not found", id)
//	return errors.IOFailure(err, "failed to read sheet")
//	return errors.Wrapf(err, "failed to copy skills of %s", id)
//
// Wrap keeps the code of the error it wraps, so a VERSION_CONFLICT raised in a
// repository is still a VERSION_CONFLICT when it reaches the handler. Use
// WrapWithCode to change the meaning on purpose, as the snapshot importer
// does when a rejected sheet becomes INVALID_IMPORT.
//
// # Checking
//
//	if errors.IsVersionConflict(err) {
//	    // the caller may re-read and retry
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("siz", abilities.SIZ, 30, 90, vb)
//	errors.ValidateMaxRunes("version_note", note, 1000, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// BuildWithCode produces INVALID_CONFIG or INVALID_IMPORT instead of
// INVALID_ARGUMENT for dice settings and import documents.
//
// # Layers
//
// Repositories return NOT_FOUND, ALREADY_EXISTS and VERSION_CONFLICT, and wrap
// every Redis failure with IOFailure; nothing retries. Orchestrators validate
// input and wrap repository errors with context. Handlers convert with
// ToGRPCError, which also packs the original code into the status details
// because several engine codes share one gRPC code. FromGRPCError restores it
// on the client side.
//
// # Engine codes
//
//   - UNKNOWN_ABILITY: a dice roll for a tag outside the eight abilities
//   - INVALID_CONFIG: dice setting or service setting out of bounds
//   - INVALID_IMPORT: import document missing fields or mistyped
//   - VERSION_CONFLICT: (owner, name, version) taken, or a lost transaction
//   - CYCLIC_PARENT: a parent link that would close a cycle
//   - IMAGE_QUOTA_EXCEEDED: image count, size or total size breached
//   - IO_FAILURE: storage failure, surfaced unchanged
//   - SYNC_DISABLED: VTT sync requested while it is switched off
package errors
