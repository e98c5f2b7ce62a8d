package sitefilter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when a raw string cannot be parsed as an absolute URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrEmptyDomain is returned when a URL parses but carries no usable hostname.
	ErrEmptyDomain = errors.New("empty domain")
	// ErrEmptyInput is returned when a domain to add is empty after trimming.
	ErrEmptyInput = errors.New("empty input")
	// ErrDuplicateEntry is returned when a domain to add is already in the exclusion list.
	ErrDuplicateEntry = errors.New("domain is already excluded")
	// ErrEmptyKeyword is returned when a search keyword is empty after trimming.
	ErrEmptyKeyword = errors.New("empty keyword")
	// ErrStorage matches every *StorageError through errors.Is.
	ErrStorage = errors.New("storage error")
	// ErrCorruptState is returned when the stored value exists but is not a list of strings.
	ErrCorruptState = errors.New("corrupt stored state")
	// ErrNoActiveTab is returned when the tab resolver cannot find an active tab.
	ErrNoActiveTab = errors.New("no active tab")
	// ErrNoOpener is returned when a URL must be opened but no opener is configured.
	ErrNoOpener = errors.New("no opener configured")
)

// StorageError wraps a failure of the persistence port.
// The underlying error is kept intact and reachable through errors.Is and errors.As.
type StorageError struct {
	Op  string // "get" or "set"
	Key string // storage key the operation targeted
	Err error  // underlying store error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) true for any StorageError.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
