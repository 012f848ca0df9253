package domain

import "errors"

var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrListingNotFound       = errors.New("listing not found")
	ErrInvalidBriefingStatus = errors.New("invalid briefing status")
	ErrUnknownSortMode       = errors.New("unknown sort mode")
	ErrSortNotSupported      = errors.New("sort is not supported")
	ErrInvalidFilterKey      = errors.New("invalid filter key")
	ErrInvalidField          = errors.New("invalid listing field")
)
