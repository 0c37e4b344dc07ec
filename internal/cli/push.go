package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <remote> <branch>",
	Short: "Push the current branch to a remote branch",
	Long: `Copy the commits and blobs reachable from HEAD to the remote and move the
remote branch to HEAD. The remote branch must be an ancestor of HEAD; fetch and
merge first otherwise.

Examples:
  gitlet push origin master`,
	Args: cobra.ExactArgs(2),
	Run:  runPush,
}

func runPush(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	remoteName, branch := args[0], args[1]
	client := openRemote(c, remoteName)
	defer client.Close()

	fmt.Printf("Pushing to %s (%s)...\n", remoteName, client.Path())

	result, err := core.Push(c.Ctx, c.Repo, client, core.PushOptions{
		RemoteName: remoteName,
		Branch:     branch,
	}, printProgress)
	fmt.Println() // newline after progress
	if err != nil {
		exitError("%v", err)
	}

	if result.UpToDate {
		fmt.Println("Already up-to-date.")
		return
	}

	green := color.New(color.FgGreen)
	if result.BranchCreated {
		green.Printf("Created remote branch '%s'\n", branch)
	}
	green.Printf("Pushed %d commit(s), %d blob(s)\n", result.CommitsPushed, result.BlobsPushed)
}
