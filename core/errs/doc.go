// Package errs defines the error taxonomy of the locations engine.
//
// Four kinds cover everything the engine deliberately signals:
//
//   - Validation: malformed input (bad ids, self-merge).
//   - NotFound: a Location or Entry that does not exist (or is soft-deleted).
//   - Conflict: a write based on a stale read, e.g. promoting a group whose
//     entries were linked elsewhere since the snapshot was taken.
//   - ExternalService: a reverse-geocoder failure, always scoped to one
//     batch item and never escalated to a sweep failure.
//
// Database and disk errors intentionally bypass this taxonomy: they are
// fatal for the current call and propagate unwrapped.
//
// # Usage
//
//	if err := store.Delete(ctx, id); errs.Is(err, errs.KindNotFound) {
//	    return c.Status(fiber.StatusNotFound).JSON(...)
//	}
package errs
