// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is. Each matches any *Error of the
// corresponding Kind.
var (
	// ErrInvalidInput indicates the source is missing or not a HEIC/HEIF file.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists indicates the destination exists and overwrite was
	// not requested. Batch runs treat it as a skip.
	ErrAlreadyExists = errors.New("already exists")

	// ErrCodecFailure indicates decoding, encoding, or writing the output failed.
	ErrCodecFailure = errors.New("codec failure")
)

// Kind classifies a conversion error.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindAlreadyExists
	KindCodecFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindAlreadyExists:
		return "already exists"
	case KindCodecFailure:
		return "codec failure"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindCodecFailure:
		return ErrCodecFailure
	}
	return nil
}

// Error is returned by Converter.Convert. Use errors.Is with the sentinels
// above to branch on Kind, or errors.As to read the path.
type Error struct {
	// Kind is the error category.
	Kind Kind
	// Path is the file the error concerns: the source for invalid input and
	// codec failures, the destination for already-exists.
	Path string
	// Message describes the failing step.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a human-readable error message.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func invalidInput(path string) error {
	return &Error{Kind: KindInvalidInput, Path: path, Message: "not a HEIC/HEIF file"}
}

func alreadyExists(path string) error {
	return &Error{Kind: KindAlreadyExists, Path: path, Message: "output already exists"}
}

func codecFailure(step, path string, cause error) error {
	return &Error{Kind: KindCodecFailure, Path: path, Message: step, Cause: cause}
}
