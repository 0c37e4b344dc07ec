// Package models defines the core data structures used throughout gitlet
// including blobs, commits, refs, remotes, and the error taxonomy.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Object kinds used as the hash header.
const (
	KindBlob   = "blob"
	KindCommit = "commit"
)

// HashObject computes the id of an object of the given kind.
// The hashed form is "<kind> <size>\x00<payload>".
func HashObject(kind string, payload []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s %d\x00", kind, len(payload))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// ContentHash identifies a file by name and content, independent of any object id.
func ContentHash(filename string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
