// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Sentinel errors classifying per-input pipeline failures. They are wrapped
// with context at the failure site and matched with errors.Is; every one is
// scoped to a single input and never aborts the batch.
var (
	// ErrUnreadableSource marks a source page that cannot be decoded
	// (corrupt file, unsupported codec).
	ErrUnreadableSource = errors.New("unreadable source")

	// ErrPasswordProtected marks an encrypted PDF. Password-protected
	// sources are reported, never decrypted.
	ErrPasswordProtected = errors.New("password protected")

	// ErrInvalidPage marks a degenerate raster page (zero dimensions).
	ErrInvalidPage = errors.New("invalid page")

	// ErrEncoding marks an internal codec failure while re-encoding a page.
	ErrEncoding = errors.New("encoding failed")

	// ErrWrite marks a destination that cannot be created or written.
	ErrWrite = errors.New("write failed")
)

// FailureKind is the stable label for a classified pipeline failure,
// suitable for reports and the run ledger.
type FailureKind string

const (
	FailureNone              FailureKind = ""
	FailureUnreadableSource  FailureKind = "unreadable-source"
	FailurePasswordProtected FailureKind = "password-protected"
	FailureInvalidPage       FailureKind = "invalid-page"
	FailureEncoding          FailureKind = "encoding"
	FailureWrite             FailureKind = "write"
	FailureInternal          FailureKind = "internal"
)

// Classify maps err to its FailureKind. A nil error maps to FailureNone;
// an error outside the sentinel set maps to FailureInternal.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrPasswordProtected):
		return FailurePasswordProtected
	case errors.Is(err, ErrUnreadableSource):
		return FailureUnreadableSource
	case errors.Is(err, ErrInvalidPage):
		return FailureInvalidPage
	case errors.Is(err, ErrEncoding):
		return FailureEncoding
	case errors.Is(err, ErrWrite):
		return FailureWrite
	default:
		return FailureInternal
	}
}
