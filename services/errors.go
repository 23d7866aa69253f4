package services

import "errors"

// Shared errors used across services and mapped to HTTP in handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrNegativeScore          = errors.New("scores must be non-negative")
	ErrTeamsNotDistinct       = errors.New("the selected teams must be distinct")
	ErrMatchAlreadyFinished   = errors.New("match is already finished, predictions are closed")
	ErrMatchNotFinished       = errors.New("match has no final result yet")
	ErrMatchTeamsIdentical    = errors.New("a match needs two different teams")
	ErrGroupResultIncomplete  = errors.New("group classification has not been completed")
	ErrFinalResultIncomplete  = errors.New("tournament result has not been completed")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrGroupNameRequired      = errors.New("group name is required")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrFlagStorageUnavailable = errors.New("flag image storage is not configured")
	ErrFlagContentTypeInvalid = errors.New("flag image must be png, jpeg or webp")

	// Conflicts
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrTeamNameConflict  = errors.New("team name is already in use")

	// Authentication / authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific not-found variants (more context than ErrNotFound)
	ErrUserNotFound             = errors.New("user not found")
	ErrTeamNotFound             = errors.New("team not found")
	ErrGroupNotFound            = errors.New("group not found")
	ErrMatchNotFound            = errors.New("match not found")
	ErrTournamentResultNotFound = errors.New("tournament result not entered yet")
)
