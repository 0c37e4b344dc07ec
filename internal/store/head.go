package store

import (
	"encoding/json"
	"fmt"

	"github.com/kilupskalvis/gitlet/internal/models"
	bolt "go.etcd.io/bbolt"
)

const headKey = "HEAD"

// GetHead retrieves the HEAD record. Returns (nil, nil) if it was never set.
func (s *Store) GetHead() (*models.HeadState, error) {
	var head *models.HeadState

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return nil
		}

		data := bucket.Get([]byte(headKey))
		if data == nil {
			return nil
		}

		head = &models.HeadState{}
		if err := json.Unmarshal(data, head); err != nil {
			return fmt.Errorf("unmarshal HEAD: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return head, nil
}

// SetHead replaces the HEAD record.
func (s *Store) SetHead(head *models.HeadState) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}

		data, err := json.Marshal(head)
		if err != nil {
			return fmt.Errorf("marshal HEAD: %w", err)
		}

		return bucket.Put([]byte(headKey), data)
	})
}

// SetCurrentBranch points HEAD at the named branch, keeping the recorded root commit.
func (s *Store) SetCurrentBranch(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}

		head := &models.HeadState{}
		if data := bucket.Get([]byte(headKey)); data != nil {
			if err := json.Unmarshal(data, head); err != nil {
				return fmt.Errorf("unmarshal HEAD: %w", err)
			}
		}
		head.BranchName = name

		data, err := json.Marshal(head)
		if err != nil {
			return fmt.Errorf("marshal HEAD: %w", err)
		}
		return bucket.Put([]byte(headKey), data)
	})
}
