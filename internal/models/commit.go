package models

import (
	"encoding/json"
	"sort"
	"time"
)

// Commit represents an immutable node of the commit graph
type Commit struct {
	ID        string            `json:"id"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	ParentIDs []string          `json:"parent_ids,omitempty"`
	Files     map[string]string `json:"files,omitempty"` // filename -> content hash
	Blobs     map[string]string `json:"blobs,omitempty"` // filename -> blob id
}

// commitPayload is the canonical encoding hashed into a commit id.
// Maps are encoded with sorted keys, so the encoding is deterministic.
type commitPayload struct {
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	ParentIDs []string          `json:"parent_ids,omitempty"`
	Files     map[string]string `json:"files,omitempty"`
	Blobs     map[string]string `json:"blobs,omitempty"`
}

// NewCommit builds a finalized commit and computes its ID from the full record
func NewCommit(message string, timestamp time.Time, parentIDs []string, files, blobs map[string]string) *Commit {
	c := &Commit{
		Message:   message,
		Timestamp: timestamp.UTC(),
		ParentIDs: parentIDs,
		Files:     files,
		Blobs:     blobs,
	}
	if c.Files == nil {
		c.Files = make(map[string]string)
	}
	if c.Blobs == nil {
		c.Blobs = make(map[string]string)
	}
	c.ID = c.ComputeID()
	return c
}

// ComputeID hashes every field except the ID itself.
func (c *Commit) ComputeID() string {
	data, _ := json.Marshal(commitPayload{
		Message:   c.Message,
		Timestamp: c.Timestamp,
		ParentIDs: c.ParentIDs,
		Files:     c.Files,
		Blobs:     c.Blobs,
	})
	return HashObject(KindCommit, data)
}

// ShortID returns a shortened commit ID (first 7 characters)
func (c *Commit) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// ParentID returns the first parent, or "" for the root commit
func (c *Commit) ParentID() string {
	if len(c.ParentIDs) == 0 {
		return ""
	}
	return c.ParentIDs[0]
}

// MergeParentID returns the second parent of a merge commit
func (c *Commit) MergeParentID() string {
	if len(c.ParentIDs) < 2 {
		return ""
	}
	return c.ParentIDs[1]
}

// IsMergeCommit returns true if this commit has two parents
func (c *Commit) IsMergeCommit() bool {
	return len(c.ParentIDs) == 2
}

// Tracks reports whether the commit tracks the given filename
func (c *Commit) Tracks(filename string) bool {
	_, ok := c.Files[filename]
	return ok
}

// BlobIDs returns the referenced blob ids in sorted order
func (c *Commit) BlobIDs() []string {
	ids := make([]string, 0, len(c.Blobs))
	seen := make(map[string]bool, len(c.Blobs))
	for _, id := range c.Blobs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Filenames returns the tracked filenames in sorted order
func (c *Commit) Filenames() []string {
	names := make([]string, 0, len(c.Files))
	for name := range c.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
