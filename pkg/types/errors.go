// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error taxonomy shared by every component. Callers test membership with
// errors.Is; components wrap these with context.
var (
	ErrExtraction      = errors.New("extraction failed")
	ErrNotFound        = errors.New("document not found")
	ErrIO              = errors.New("i/o failure")
	ErrExternalService = errors.New("external service failure")
	ErrInvalidRange    = errors.New("invalid line range")
	ErrInvalidName     = errors.New("invalid document name")
	ErrInvalidValues   = errors.New("invalid template values")
)
