package services

import "errors"

var (
	// ErrUnknownService is returned when a catalog lookup misses.
	ErrUnknownService = errors.New("services: unknown service")

	// ErrDuplicateService is returned when a catalog document defines
	// the same service name twice.
	ErrDuplicateService = errors.New("services: duplicate service definition")

	// ErrInvalidDefinition is returned when a definition is missing
	// required fields or mixes protocol and endpoint blocks.
	ErrInvalidDefinition = errors.New("services: invalid service definition")

	// ErrParse is returned when a catalog document cannot be decoded.
	ErrParse = errors.New("services: cannot parse catalog")
)
