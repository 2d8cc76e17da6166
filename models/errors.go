package models

import "errors"

// Error taxonomy for the dialogue core. None of these are fatal: validation
// and ambiguity recover by re-prompting, collaborator timeouts by retrying.
var (
	ErrValidation          = errors.New("validation failed")
	ErrAmbiguousInput      = errors.New("ambiguous input")
	ErrCollaboratorTimeout = errors.New("collaborator timeout")
	ErrSessionNotFound     = errors.New("session not found")
)
