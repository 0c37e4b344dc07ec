package models

import (
	"strings"
	"time"
)

// Remote represents another repository reachable by path.
type Remote struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// RemoteBranchName returns the local tracking ref name for a remote branch: "remote/branch".
func RemoteBranchName(remoteName, branchName string) string {
	return remoteName + "/" + branchName
}

// IsRemoteBranchOf reports whether a branch name is a tracking ref of the given remote.
func IsRemoteBranchOf(branchName, remoteName string) bool {
	return strings.HasPrefix(branchName, remoteName+"/")
}
