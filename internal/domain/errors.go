package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Validation failures. Both match ErrInvalidInput so handlers can map
	// them to a 400 without enumerating every reason.
	ErrUnsupportedType = fmt.Errorf("%w: unsupported media type", ErrInvalidInput)
	ErrTooLarge        = fmt.Errorf("%w: file too large", ErrInvalidInput)

	// Conversion failures. Raised after validation but before any storage
	// mutation, so no cleanup is ever needed for them.
	ErrDecodeFailed = errors.New("image decode failed")
	ErrEncodeFailed = errors.New("image encode failed")

	// ErrKeyExists is returned by BlobStore.Upload when the key is already
	// occupied. Keys are never reused, so seeing this in normal operation
	// indicates a bug in key generation.
	ErrKeyExists = errors.New("storage key already exists")
)
