package entity

import (
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/uuid"
)

// LockState describes whether a document currently has an active writer.
type LockState int

const (
	// LockStateUnlocked means any viewer may request ownership.
	LockStateUnlocked LockState = iota
	// LockStateLocked means only the current owner may submit deltas.
	LockStateLocked
)

// String implements fmt.Stringer.
func (l LockState) String() string {
	if l == LockStateLocked {
		return "locked"
	}
	return "unlocked"
}

// DocumentOwnership records which session may currently submit edits for a
// document. Owned exclusively by the shared-state controller.
type DocumentOwnership struct {
	Owner          uuid.UUID
	PreferredOwner uuid.UUID
	Epoch          uint64
	Lock           LockState
	LastActivity   time.Time

	// ResyncComplete reports whether the current owner has aligned its local
	// text with the broker's authoritative copy for the current epoch.
	// Deltas are rejected until this is true.
	ResyncComplete bool
}

// Fingerprint is a cheap identity for a document's authoritative text, used
// to short-circuit resyncs when the client already holds the current text.
type Fingerprint struct {
	Hash64   uint64
	LenChars int
}

// NewFingerprint computes the fingerprint of the given text.
func NewFingerprint(text string) Fingerprint {
	return Fingerprint{
		Hash64:   xxhash.Sum64String(text),
		LenChars: utf8.RuneCountInString(text),
	}
}
