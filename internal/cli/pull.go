package cli

import (
	"fmt"

	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull <remote> <branch>",
	Short: "Fetch a remote branch and merge it into the current branch",
	Long: `Equivalent to fetching <remote> <branch> and then merging <remote>/<branch>.

Examples:
  gitlet pull origin master`,
	Args: cobra.ExactArgs(2),
	Run:  runPull,
}

func runPull(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	remoteName, branch := args[0], args[1]
	client := openRemote(c, remoteName)
	defer client.Close()

	fmt.Printf("Pulling from %s (%s)...\n", remoteName, client.Path())

	result, err := core.Pull(c.Ctx, c.Repo, client, core.PullOptions{
		RemoteName: remoteName,
		Branch:     branch,
	}, printProgress)
	fmt.Println() // newline after progress
	if err != nil {
		exitError("%v", err)
	}

	if !result.FetchResult.UpToDate {
		printFetchResult(&result.FetchResult)
	}
	if result.UpToDate || result.Merge == nil {
		fmt.Println("Already up-to-date.")
		return
	}
	printMergeResult(result.Merge)
}
