package domain

import "errors"

var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrRecipeNotFound = errors.New("recipe not found")
var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateUsername = errors.New("username already taken")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrLogIndex = errors.New("cooking log index out of range")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrValidation = errors.New("invalid input")

// ErrWriteConflict is returned when a conditional write loses the
// compare-and-swap race more times than the retry budget allows.
var ErrWriteConflict = errors.New("concurrent write conflict")
