package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ArtifactFingerprint identifies a fitted pipeline by its canonical
// serialized form. Two fits that learned identical parameters produce
// identical fingerprints, which is what the idempotence checks rely on.
type ArtifactFingerprint Hash

func NewArtifactFingerprint(data []byte) ArtifactFingerprint {
	return ArtifactFingerprint(NewHash(data))
}

func (f ArtifactFingerprint) String() string { return Hash(f).String() }

func (f ArtifactFingerprint) IsEmpty() bool { return Hash(f).IsEmpty() }

func (f ArtifactFingerprint) Equals(other ArtifactFingerprint) bool { return f == other }
