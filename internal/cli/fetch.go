package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <remote> <branch>",
	Short: "Download a remote branch into a remote-tracking branch",
	Long: `Copy the commits and blobs of the remote branch that are missing locally and
point the local branch <remote>/<branch> at its tip. HEAD and local branches
are not modified.

Examples:
  gitlet fetch origin master
  gitlet merge origin/master`,
	Args: cobra.ExactArgs(2),
	Run:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	remoteName, branch := args[0], args[1]
	client := openRemote(c, remoteName)
	defer client.Close()

	fmt.Printf("Fetching from %s (%s)...\n", remoteName, client.Path())

	result, err := core.Fetch(c.Ctx, c.Repo, client, core.FetchOptions{
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
	printFetchResult(result)
}

func printFetchResult(result *core.FetchResult) {
	green := color.New(color.FgGreen)
	if result.CommitsFetched > 0 {
		green.Printf("Fetched %d commit(s), %d blob(s)\n", result.CommitsFetched, result.BlobsFetched)
	}
	if result.PreviousTip == "" {
		fmt.Printf(" * [new branch] %s\n", result.TrackingBranch)
	} else {
		fmt.Printf("   %s..%s  %s\n", shortID(result.PreviousTip), shortID(result.RemoteTip), result.TrackingBranch)
	}
}
