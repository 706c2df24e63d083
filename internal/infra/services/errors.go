package services

import "errors"

var (
	ErrEmptyInput                = errors.New("submission has no text, audio or image")
	ErrBusy                      = errors.New("an analysis is already in progress for this session")
	ErrSessionNotFound           = errors.New("session not found")
	ErrForbidden                 = errors.New("resource belongs to another user")
	ErrInvalidTransition         = errors.New("invalid status transition")
	ErrPrescriptionAlreadyLinked = errors.New("appointment already has a prescription")
	ErrUnsupportedLanguage       = errors.New("unsupported language")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrValidation                = errors.New("validation failed")
)
