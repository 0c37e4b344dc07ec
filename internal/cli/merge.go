package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current branch",
	Long: `Merge the specified branch into the current branch using their latest
common ancestor as the base.

Conflicting files are written with conflict markers and the merge commit is
still created. Remote-tracking branches such as origin/master can be merged.

Examples:
  gitlet merge feature
  gitlet merge origin/master`,
	Args: cobra.ExactArgs(1),
	Run:  runMerge,
}

func runMerge(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	result, err := core.Merge(c.Ctx, c.Repo, args[0])
	if err != nil {
		exitError("%v", err)
	}
	printMergeResult(result)
}

func printMergeResult(result *models.MergeResult) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)

	if result.FastForward {
		green.Println("Current branch fast-forwarded.")
	} else if result.MergeCommit != nil {
		fmt.Printf("Merge commit: %s\n", result.MergeCommit.ShortID())
	}

	if result.FilesAdded > 0 {
		green.Printf("  %d files added\n", result.FilesAdded)
	}
	if result.FilesUpdated > 0 {
		yellow.Printf("  %d files updated\n", result.FilesUpdated)
	}
	if result.FilesDeleted > 0 {
		red.Printf("  %d files deleted\n", result.FilesDeleted)
	}

	if result.HasConflicts() {
		for _, conflict := range result.Conflicts {
			red.Printf("  %s: %s\n", conflict.Type, conflict.Filename)
		}
		fmt.Println("Encountered a merge conflict.")
	}
}
