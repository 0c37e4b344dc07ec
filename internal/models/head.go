package models

// HeadState represents the symbolic HEAD pointer
type HeadState struct {
	BranchName      string `json:"branch_name"`       // Active branch
	InitialCommitID string `json:"initial_commit_id"` // Root commit created by init
}
