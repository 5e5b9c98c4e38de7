package nudgeerr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedVersion indicates a version string that is empty or has a non-numeric segment.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrNetworkFailure indicates the store metadata could not be retrieved.
	ErrNetworkFailure = errors.New("unable to retrieve store metadata")

	// ErrParseFailure indicates the store metadata was retrieved but could not be decoded.
	ErrParseFailure = errors.New("unable to parse store metadata")

	// ErrNoResultsFound indicates the store lookup returned no entries for the app identifier.
	ErrNoResultsFound = errors.New("no store results found")

	// ErrOSVersionUnsupported indicates the current OS is older than the store version requires.
	ErrOSVersionUnsupported = errors.New("store version requires a newer OS version")

	// ErrDataMissing is matched (with errors.Is) by every DataMissingError.
	ErrDataMissing = errors.New("store metadata is missing a required field")

	// ErrMalformedStoreURL indicates a store listing URL could not be built.
	ErrMalformedStoreURL = errors.New("malformed store URL")

	// ErrCheckInProgress indicates a check was dropped because another is still running or being presented.
	ErrCheckInProgress = errors.New("a version check is already in progress")
)

// DataMissingError names the store metadata field that was absent.
type DataMissingError struct {
	Field string
}

func NewDataMissingError(field string) *DataMissingError {
	return &DataMissingError{Field: field}
}

func (e *DataMissingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDataMissing, e.Field)
}

func (e *DataMissingError) Is(target error) bool {
	if target == ErrDataMissing {
		return true
	}
	var t *DataMissingError
	if errors.As(target, &t) {
		return t.Field == "" || t.Field == e.Field
	}
	return false
}
