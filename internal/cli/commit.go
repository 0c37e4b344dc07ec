package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit <message>",
	Short: "Record staged changes to the repository",
	Long: `Create a new commit from the current commit plus the staged additions and
removals, then clear the staging area.

Examples:
  gitlet commit "add wug.txt"`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCommit,
}

func runCommit(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	commit, err := core.CreateCommit(c.Ctx, c.Repo, strings.Join(args, " "))
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("[%s] %s\n", commit.ShortID(), commit.Message)
}
