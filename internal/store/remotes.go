package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/kilupskalvis/gitlet/internal/models"
	bolt "go.etcd.io/bbolt"
)

// AddRemote stores a new remote. Returns an AlreadyExistsError if a remote with the same name exists.
func (s *Store) AddRemote(name, path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRemotes)
		if bucket == nil {
			return fmt.Errorf("remotes bucket not found")
		}

		if bucket.Get([]byte(name)) != nil {
			return &models.AlreadyExistsError{Kind: models.KindRemote, Name: name}
		}

		remote := &models.Remote{
			Name:      name,
			Path:      path,
			CreatedAt: time.Now(),
		}

		data, err := json.Marshal(remote)
		if err != nil {
			return fmt.Errorf("marshal remote: %w", err)
		}

		return bucket.Put([]byte(name), data)
	})
}

// GetRemote retrieves a remote by name. Returns (nil, nil) if not found.
func (s *Store) GetRemote(name string) (*models.Remote, error) {
	var remote *models.Remote

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRemotes)
		if bucket == nil {
			return nil
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return nil
		}

		remote = &models.Remote{}
		return json.Unmarshal(data, remote)
	})

	return remote, err
}

// ListRemotes returns all remotes sorted by name.
func (s *Store) ListRemotes() ([]*models.Remote, error) {
	var remotes []*models.Remote

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRemotes)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var r models.Remote
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal remote: %w", err)
			}
			remotes = append(remotes, &r)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Name < remotes[j].Name
	})

	return remotes, nil
}

// RemoveRemote deletes a remote and all of its remote-tracking branches.
func (s *Store) RemoveRemote(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		remoteBucket := tx.Bucket(bucketRemotes)
		if remoteBucket == nil {
			return fmt.Errorf("remotes bucket not found")
		}

		if remoteBucket.Get([]byte(name)) == nil {
			return &models.NotFoundError{Kind: models.KindRemote, Name: name}
		}

		if err := remoteBucket.Delete([]byte(name)); err != nil {
			return fmt.Errorf("delete remote: %w", err)
		}

		// Delete all remote-tracking branches for this remote
		branchBucket := tx.Bucket(bucketBranches)
		if branchBucket == nil {
			return nil
		}
		prefix := []byte(models.RemoteBranchName(name, ""))
		var toDelete [][]byte
		c := branchBucket.Cursor()
		for k, _ := c.Seek(prefix); k != nil && models.IsRemoteBranchOf(string(k), name); k, _ = c.Next() {
			toDelete = append(toDelete, append([]byte(nil), k...))
		}
		for _, k := range toDelete {
			if err := branchBucket.Delete(k); err != nil {
				return fmt.Errorf("delete remote branch: %w", err)
			}
		}

		return nil
	})
}
