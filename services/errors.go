package services

import "errors"

// Shared errors surfaced to the HTTP layer. Each maps to a single status
// class in handlers.mapServiceErrorToHTTP.
var (
	// Missing targets
	ErrNotFound            = errors.New("requested resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrInscriptionNotFound = errors.New("inscription not found")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrParticipantNotFound = errors.New("match participant not found")
	ErrAdminNotFound       = errors.New("admin not found")

	// Validation and business rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidFileFormat  = errors.New("invalid file format")
	ErrInvalidParticipant = errors.New("participant must be either a team or a user")
	ErrPasswordTooShort   = errors.New("password is too short")

	// Conflicts
	ErrDuplicateRegistration = errors.New("a confirmed registration already exists for this game")
	ErrDuplicateParticipant  = errors.New("participant is already attached to this match")
	ErrGameNameConflict      = errors.New("game name already exists")
	ErrUsernameConflict      = errors.New("username is already taken")
	ErrRosterConflict        = errors.New("user is already on the team roster")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrSelfDeletion         = errors.New("an admin cannot delete their own account")
)
