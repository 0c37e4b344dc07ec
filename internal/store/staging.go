package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

// StagedFile is one entry of the staging area: the file name and the bytes
// recorded when it was staged.
type StagedFile struct {
	Filename string
	Content  []byte
}

// StageAddition records content to be committed under filename, replacing
// any previous addition for the same name.
func (s *Store) StageAddition(filename string, content []byte) error {
	return s.stage(bucketAdditions, filename, content)
}

// StageRemoval records filename as removed in the next commit.
// content is the version tracked by HEAD at removal time.
func (s *Store) StageRemoval(filename string, content []byte) error {
	return s.stage(bucketRemovals, filename, content)
}

// UnstageAddition drops a staged addition. No error if none exists.
func (s *Store) UnstageAddition(filename string) error {
	return s.unstage(bucketAdditions, filename)
}

// UnstageRemoval drops a staged removal. No error if none exists.
func (s *Store) UnstageRemoval(filename string) error {
	return s.unstage(bucketRemovals, filename)
}

// GetStagedAddition returns the staged bytes for filename.
// Returns (nil, false, nil) if the file is not staged for addition.
func (s *Store) GetStagedAddition(filename string) ([]byte, bool, error) {
	var content []byte
	var found bool

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketAdditions)
		if bucket == nil {
			return nil
		}

		data, ok := lookup(bucket, filename)
		if !ok {
			return nil
		}

		// Copy the value since it's only valid during the transaction
		content = append([]byte{}, data...)
		found = true
		return nil
	})

	return content, found, err
}

// IsStagedForRemoval reports whether filename is staged for removal.
func (s *Store) IsStagedForRemoval(filename string) (bool, error) {
	var staged bool

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRemovals)
		if bucket == nil {
			return nil
		}
		_, staged = lookup(bucket, filename)
		return nil
	})

	return staged, err
}

// ListAdditions returns every staged addition sorted by filename.
func (s *Store) ListAdditions() ([]*StagedFile, error) {
	return s.list(bucketAdditions)
}

// ListRemovals returns every staged removal sorted by filename.
func (s *Store) ListRemovals() ([]*StagedFile, error) {
	return s.list(bucketRemovals)
}

// StagedCount returns the number of staged additions plus removals.
func (s *Store) StagedCount() (int, error) {
	var count int

	err := s.db.View(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketAdditions, bucketRemovals} {
			if bucket := tx.Bucket(name); bucket != nil {
				count += bucket.Stats().KeyN
			}
		}
		return nil
	})

	return count, err
}

// ClearStaging empties both staging sets.
func (s *Store) ClearStaging() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketAdditions, bucketRemovals} {
			if err := tx.DeleteBucket(name); err != nil && err != berrors.ErrBucketNotFound {
				return fmt.Errorf("failed to delete %s bucket: %w", name, err)
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("recreate %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func (s *Store) stage(bucketName []byte, filename string, content []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return fmt.Errorf("failed to create %s bucket: %w", bucketName, err)
		}

		// bbolt treats a nil value as a missing key, so store empty files as empty slices
		if content == nil {
			content = []byte{}
		}

		if err := bucket.Put([]byte(filename), content); err != nil {
			return fmt.Errorf("failed to stage %s: %w", filename, err)
		}
		return nil
	})
}

func (s *Store) unstage(bucketName []byte, filename string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}
		if err := bucket.Delete([]byte(filename)); err != nil {
			return fmt.Errorf("failed to unstage %s: %w", filename, err)
		}
		return nil
	})
}

func (s *Store) list(bucketName []byte) ([]*StagedFile, error) {
	var files []*StagedFile

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}

		// bbolt keys iterate in byte order, which is already sorted by filename
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			files = append(files, &StagedFile{
				Filename: string(k),
				Content:  append([]byte{}, v...),
			})
		}
		return nil
	})

	return files, err
}

// lookup finds a key with a cursor, so empty staged files are still reported as present.
func lookup(bucket *bolt.Bucket, filename string) ([]byte, bool) {
	k, v := bucket.Cursor().Seek([]byte(filename))
	if k == nil || string(k) != filename {
		return nil, false
	}
	return v, true
}
