package services

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrAlreadyRequested = errors.New("already requested")
	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrNoPendingRequest = errors.New("no pending request")
	ErrEmptyPost        = errors.New("post cannot be empty")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrExternalIDTaken  = errors.New("external id already in use")
)
