package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the authenticated caller may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict with current state")

// ErrOverlap indicates that an absence or manual request collides with an existing one.
var ErrOverlap = errors.New("overlapping absence")

// ErrAlreadyResolved indicates a second transition attempt on a request that already
// reached a terminal state.
var ErrAlreadyResolved = errors.New("request already resolved")

// ErrInsufficientBalance indicates the absence balance cannot cover the requested days.
var ErrInsufficientBalance = errors.New("insufficient absence balance")

// ErrInvalidAdjustment indicates a balance adjustment that would leave the allocated
// pool negative.
var ErrInvalidAdjustment = errors.New("adjustment would make allocated negative")

// ErrWouldGoNegative indicates a balance adjustment that would leave the available
// balance negative.
var ErrWouldGoNegative = errors.New("adjustment would make available balance negative")

// Clock-event sequencing errors.
var (
	ErrInvalidKind   = errors.New("invalid clock event kind")
	ErrAbsenceBlock  = errors.New("clocking blocked by an approved paid absence")
	ErrDuplicateKind = errors.New("previous clock event has the same kind")
	ErrMissingEntry  = errors.New("exit requires a prior entry event")
	ErrNoPriorEntry  = errors.New("no entry event precedes the corrected timestamp")
)

// ErrInternal indicates an infrastructure failure (storage, connectivity). It is
// logged with full context and surfaced to callers generically.
var ErrInternal = errors.New("internal error")
