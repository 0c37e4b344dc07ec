package cli

import (
	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <commit>",
	Short: "Move the current branch to a commit",
	Long: `Check out every file of the given commit, delete tracked files it lacks,
move the current branch to it and clear the staging area.
The commit id may be abbreviated.`,
	Args: cobra.ExactArgs(1),
	Run:  runReset,
}

func runReset(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	result, err := core.Reset(c.Ctx, c.Repo, args[0])
	if err != nil {
		exitError("%v", err)
	}

	yellow := color.New(color.FgYellow)
	yellow.Printf("HEAD is now at %s\n", shortID(result.TargetCommit))
}
