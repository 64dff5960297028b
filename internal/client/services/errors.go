package services

import "errors"

var (
	ErrProfileIncomplete    = errors.New("profile incomplete")
	ErrAlreadyVolunteer     = errors.New("volunteers cannot request help")
	ErrAlreadyHelpRequester = errors.New("help requesters cannot volunteer")
	ErrNotManager           = errors.New("manager role required")
	ErrInvalidInput         = errors.New("invalid input")
)
