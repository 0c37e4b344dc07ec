package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/kilupskalvis/gitlet/internal/models"
	bolt "go.etcd.io/bbolt"
)

// CreateBranch stores a new branch with the given name and commit ID.
// Returns an AlreadyExistsError if the name is taken.
func (s *Store) CreateBranch(name, commitID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBranches)
		if bucket == nil {
			return fmt.Errorf("branches bucket not found")
		}

		if bucket.Get([]byte(name)) != nil {
			return &models.AlreadyExistsError{Kind: models.KindBranch, Name: name}
		}

		return putBranch(bucket, &models.Branch{
			Name:      name,
			CommitID:  commitID,
			CreatedAt: time.Now(),
		})
	})
}

// SetBranch creates the branch or moves it to commitID.
// Used for remote-tracking refs, which are rewritten on every fetch.
func (s *Store) SetBranch(name, commitID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBranches)
		if bucket == nil {
			return fmt.Errorf("branches bucket not found")
		}

		branch := &models.Branch{Name: name, CreatedAt: time.Now()}
		if data := bucket.Get([]byte(name)); data != nil {
			if err := json.Unmarshal(data, branch); err != nil {
				return fmt.Errorf("unmarshal branch: %w", err)
			}
		}
		branch.CommitID = commitID

		return putBranch(bucket, branch)
	})
}

// GetBranch retrieves a branch by name. Returns (nil, nil) if not found.
func (s *Store) GetBranch(name string) (*models.Branch, error) {
	var branch *models.Branch

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBranches)
		if bucket == nil {
			return nil
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return nil
		}

		branch = &models.Branch{}
		return json.Unmarshal(data, branch)
	})

	if err != nil {
		return nil, err
	}

	return branch, nil
}

// ListBranches returns all branches sorted by name.
func (s *Store) ListBranches() ([]*models.Branch, error) {
	var branches []*models.Branch

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBranches)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var branch models.Branch
			if err := json.Unmarshal(v, &branch); err != nil {
				return fmt.Errorf("unmarshal branch: %w", err)
			}
			branches = append(branches, &branch)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})

	return branches, nil
}

// UpdateBranch updates an existing branch's commit ID.
func (s *Store) UpdateBranch(name, commitID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBranches)
		if bucket == nil {
			return fmt.Errorf("branches bucket not found")
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return &models.NotFoundError{Kind: models.KindBranch, Name: name}
		}

		var branch models.Branch
		if err := json.Unmarshal(data, &branch); err != nil {
			return fmt.Errorf("unmarshal branch: %w", err)
		}

		branch.CommitID = commitID
		return putBranch(bucket, &branch)
	})
}

// DeleteBranch removes a branch by name.
func (s *Store) DeleteBranch(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBranches)
		if bucket == nil {
			return fmt.Errorf("branches bucket not found")
		}

		if bucket.Get([]byte(name)) == nil {
			return &models.NotFoundError{Kind: models.KindBranch, Name: name}
		}

		return bucket.Delete([]byte(name))
	})
}

// BranchExists checks if a branch with the given name exists.
func (s *Store) BranchExists(name string) (bool, error) {
	var exists bool

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBranches)
		if bucket == nil {
			return nil
		}

		exists = bucket.Get([]byte(name)) != nil
		return nil
	})

	if err != nil {
		return false, err
	}

	return exists, nil
}

func putBranch(bucket *bolt.Bucket, branch *models.Branch) error {
	data, err := json.Marshal(branch)
	if err != nil {
		return fmt.Errorf("marshal branch: %w", err)
	}
	return bucket.Put([]byte(branch.Name), data)
}
