package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/spf13/cobra"
)

const logDateFormat = "Mon Jan 02 15:04:05 2006 -0700"

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show commit history",
	Long: `Display the history of the current branch from HEAD back to the initial commit,
following first parents only.`,
	Args: cobra.NoArgs,
	Run:  runLog,
}

var globalLogCmd = &cobra.Command{
	Use:   "global-log",
	Short: "Show every commit ever made",
	Args:  cobra.NoArgs,
	Run:   runGlobalLog,
}

var findCmd = &cobra.Command{
	Use:   "find <message>",
	Short: "Print the ids of commits with the given message",
	Args:  cobra.ExactArgs(1),
	Run:   runFind,
}

var logOneline bool

func init() {
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "Show each commit on a single line")
	globalLogCmd.Flags().BoolVar(&logOneline, "oneline", false, "Show each commit on a single line")
}

func runLog(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	commits, err := core.Log(c.Ctx, c.Repo)
	if err != nil {
		exitError("failed to get commit log: %v", err)
	}
	printCommits(commits)
}

func runGlobalLog(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	commits, err := core.GlobalLog(c.Ctx, c.Repo)
	if err != nil {
		exitError("failed to list commits: %v", err)
	}
	printCommits(commits)
}

func runFind(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	ids, err := core.Find(c.Ctx, c.Repo, args[0])
	if err != nil {
		exitError("%v", err)
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func printCommits(commits []*models.Commit) {
	yellow := color.New(color.FgYellow)

	for _, commit := range commits {
		if logOneline {
			yellow.Printf("%s ", commit.ShortID())
			fmt.Println(commit.Message)
			continue
		}

		fmt.Println("===")
		yellow.Printf("commit %s\n", commit.ID)
		if commit.IsMergeCommit() {
			fmt.Printf("Merge: %s %s\n", shortID(commit.ParentID()), shortID(commit.MergeParentID()))
		}
		fmt.Printf("Date: %s\n", commit.Timestamp.Local().Format(logDateFormat))
		fmt.Println(commit.Message)
		fmt.Println()
	}
}
