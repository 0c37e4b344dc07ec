package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <branch> | -- <file> | <commit> -- <file>",
	Short: "Switch branches or restore working tree files",
	Long: `Switch to a branch, or restore a single file from HEAD or from a commit.

Examples:
  gitlet checkout feature             # Switch to the feature branch
  gitlet checkout -- wug.txt          # Restore wug.txt from HEAD
  gitlet checkout a1b2c3d -- wug.txt  # Restore wug.txt from commit a1b2c3d`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runCheckout,
}

func runCheckout(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	switch dash := cmd.ArgsLenAtDash(); {
	case dash == 0 && len(args) == 1:
		if err := core.CheckoutFile(c.Ctx, c.Repo, args[0]); err != nil {
			exitError("%v", err)
		}

	case dash == 1 && len(args) == 2:
		if err := core.CheckoutFileAt(c.Ctx, c.Repo, args[0], args[1]); err != nil {
			exitError("%v", err)
		}

	case dash == -1 && len(args) == 1:
		result, err := core.CheckoutBranch(c.Ctx, c.Repo, args[0])
		if err != nil {
			exitError("%v", err)
		}

		green := color.New(color.FgGreen)
		green.Printf("Switched to branch '%s'\n", result.BranchName)
		if result.FilesWritten > 0 || result.FilesRemoved > 0 {
			fmt.Printf("  %d written, %d removed\n", result.FilesWritten, result.FilesRemoved)
		}

	default:
		exitError("incorrect operands")
	}
}
