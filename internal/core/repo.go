// Package core implements gitlet's repository operations: staging, commit
// construction, history, checkout, merge, and remote synchronization.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/objectstore"
	"github.com/kilupskalvis/gitlet/internal/store"
	"github.com/kilupskalvis/gitlet/internal/worktree"
)

// InitialCommitMessage is the message of the root commit created by Init.
const InitialCommitMessage = "initial commit"

// Repo bundles everything an operation needs about one repository.
type Repo struct {
	Config  *config.Config
	Store   *store.Store
	Objects objectstore.Store
	Work    *worktree.WorkTree
	Logger  *slog.Logger
}

// Open opens the repository described by cfg. A nil logger discards log output.
func Open(cfg *config.Config, logger *slog.Logger) (*Repo, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	objects, err := objectstore.NewFSStore(cfg.ObjectsPath())
	if err != nil {
		return nil, fmt.Errorf("open object store: %w", err)
	}

	st, err := store.New(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	if err := st.Initialize(); err != nil {
		st.Close()
		return nil, fmt.Errorf("initialize state: %w", err)
	}

	return &Repo{
		Config:  cfg,
		Store:   st,
		Objects: objects,
		Work:    worktree.New(cfg.WorkTreePath()),
		Logger:  logger,
	}, nil
}

// Close releases the repository's state database.
func (r *Repo) Close() error {
	return r.Store.Close()
}

// Init creates a new repository in dir with a root commit on the default branch.
// Returns models.ErrAlreadyInitialized if dir already holds a repository.
func Init(ctx context.Context, dir string, logger *slog.Logger) (*Repo, error) {
	cfg, err := config.Initialize(dir)
	if err != nil {
		return nil, err
	}

	r, err := bootstrap(ctx, cfg, logger)
	if err != nil {
		// Cleanup on failure
		os.RemoveAll(cfg.GitletPath())
		return nil, err
	}

	r.Logger.Info("initialized repository", "path", cfg.GitletPath(), "branch", cfg.DefaultBranch)
	return r, nil
}

// bootstrap opens a freshly initialized repository and records the root commit,
// the default branch and HEAD.
func bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Repo, error) {
	r, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	root := models.NewCommit(InitialCommitMessage, time.Unix(0, 0), nil, nil, nil)
	if _, err := r.Objects.PutCommit(ctx, root); err != nil {
		r.Close()
		return nil, fmt.Errorf("store initial commit: %w", err)
	}

	if err := r.Store.CreateBranch(cfg.DefaultBranch, root.ID); err != nil {
		r.Close()
		return nil, fmt.Errorf("create branch: %w", err)
	}

	if err := r.Store.SetHead(&models.HeadState{BranchName: cfg.DefaultBranch, InitialCommitID: root.ID}); err != nil {
		r.Close()
		return nil, fmt.Errorf("set HEAD: %w", err)
	}
	return r, nil
}

// head returns the HEAD record.
func (r *Repo) head() (*models.HeadState, error) {
	head, err := r.Store.GetHead()
	if err != nil {
		return nil, fmt.Errorf("read HEAD: %w", err)
	}
	if head == nil {
		return nil, models.ErrNotInitialized
	}
	return head, nil
}

// currentBranch returns the branch HEAD points at.
func (r *Repo) currentBranch() (*models.Branch, error) {
	head, err := r.head()
	if err != nil {
		return nil, err
	}
	branch, err := r.Store.GetBranch(head.BranchName)
	if err != nil {
		return nil, fmt.Errorf("get branch: %w", err)
	}
	if branch == nil {
		return nil, fmt.Errorf("HEAD points at missing branch '%s': %w", head.BranchName, models.ErrStorageCorruption)
	}
	return branch, nil
}

// headCommit returns the commit at the tip of the current branch.
func (r *Repo) headCommit(ctx context.Context) (*models.Commit, error) {
	branch, err := r.currentBranch()
	if err != nil {
		return nil, err
	}
	return r.commit(ctx, branch.CommitID)
}

// commit loads a commit, reporting a missing one as a NotFoundError.
func (r *Repo) commit(ctx context.Context, id string) (*models.Commit, error) {
	c, err := r.Objects.GetCommit(ctx, id)
	if errors.Is(err, models.ErrObjectNotFound) {
		return nil, &models.NotFoundError{Kind: models.KindCommitObject, Name: id}
	}
	return c, err
}

// fileContent returns the bytes of filename as recorded in commit c.
func (r *Repo) fileContent(ctx context.Context, c *models.Commit, filename string) ([]byte, error) {
	blobID, ok := c.Blobs[filename]
	if !ok {
		return nil, &models.NotFoundError{Kind: models.KindFileInCommit, Name: filename}
	}
	blob, err := r.Objects.GetBlob(ctx, blobID)
	if errors.Is(err, models.ErrObjectNotFound) {
		return nil, &models.NotFoundError{Kind: models.KindBlobObject, Name: blobID}
	}
	if err != nil {
		return nil, err
	}
	return blob.Content, nil
}
