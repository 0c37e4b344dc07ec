package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch [name]",
	Short: "List or create branches",
	Long: `Without arguments, lists all branches with the current one marked.
With a name argument, creates a new branch at the current commit.
The new branch is not checked out.

Examples:
  gitlet branch              # List all branches
  gitlet branch feature      # Create 'feature' at HEAD`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBranch,
}

var rmBranchCmd = &cobra.Command{
	Use:   "rm-branch <name>",
	Short: "Delete a branch",
	Long:  `Delete the branch pointer. Commits created on the branch are kept.`,
	Args:  cobra.ExactArgs(1),
	Run:   runRmBranch,
}

func runBranch(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	if len(args) > 0 {
		branch, err := core.CreateBranch(c.Ctx, c.Repo, args[0])
		if err != nil {
			exitError("%v", err)
		}
		fmt.Printf("Created branch '%s' at %s\n", branch.Name, shortID(branch.CommitID))
		return
	}

	branches, currentBranch, err := core.ListBranches(c.Repo)
	if err != nil {
		exitError("failed to list branches: %v", err)
	}

	green := color.New(color.FgGreen)
	for _, branch := range branches {
		if branch.Name == currentBranch {
			green.Printf("* %s\n", branch.Name)
		} else {
			fmt.Printf("  %s\n", branch.Name)
		}
	}
}

func runRmBranch(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	if err := core.DeleteBranch(c.Repo, args[0]); err != nil {
		exitError("%v", err)
	}
	fmt.Printf("Deleted branch '%s'\n", args[0])
}
