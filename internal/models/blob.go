package models

import "encoding/json"

// Blob is an immutable snapshot of one file's bytes at stage time
type Blob struct {
	ID          string `json:"id"`
	ContentHash string `json:"content_hash"`
	Filename    string `json:"filename"`
	Content     []byte `json:"content"`
}

// blobPayload is the canonical encoding hashed into a blob id.
type blobPayload struct {
	ContentHash string `json:"content_hash"`
	Filename    string `json:"filename"`
	Content     []byte `json:"content"`
}

// NewBlob creates a blob for the given file and computes its ids
func NewBlob(filename string, content []byte) *Blob {
	b := &Blob{
		ContentHash: ContentHash(filename, content),
		Filename:    filename,
		Content:     append([]byte(nil), content...),
	}
	b.ID = b.ComputeID()
	return b
}

// ComputeID hashes the blob's encoded fields. It ignores the stored ID.
func (b *Blob) ComputeID() string {
	data, _ := json.Marshal(blobPayload{
		ContentHash: b.ContentHash,
		Filename:    b.Filename,
		Content:     b.Content,
	})
	return HashObject(KindBlob, data)
}
