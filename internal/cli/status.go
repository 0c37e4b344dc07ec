package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the working tree status",
	Long: `Show the branches, the staging area, modifications not staged for commit
and untracked files. Every section is sorted.`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	status, err := core.Status(c.Ctx, c.Repo)
	if err != nil {
		exitError("failed to compute status: %v", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Println("=== Branches ===")
	for _, name := range status.Branches {
		if name == status.CurrentBranch {
			green.Printf("*%s\n", name)
		} else {
			fmt.Println(name)
		}
	}

	fmt.Println("\n=== Staged Files ===")
	for _, name := range status.Staged {
		green.Println(name)
	}

	fmt.Println("\n=== Removed Files ===")
	for _, name := range status.Removed {
		red.Println(name)
	}

	fmt.Println("\n=== Modifications Not Staged For Commit ===")
	for _, m := range status.Modified {
		red.Printf("%s (%s)\n", m.Filename, m.Kind)
	}

	fmt.Println("\n=== Untracked Files ===")
	for _, name := range status.Untracked {
		fmt.Println(name)
	}
	fmt.Println()
}
