package cli

import (
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Stage a file for the next commit",
	Long: `Stage the current contents of a file for addition.

Adding a file identical to the committed version unstages it instead.
Adding a file staged for removal cancels the removal.`,
	Args: cobra.ExactArgs(1),
	Run:  runAdd,
}

var rmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Unstage a file or stage it for removal",
	Long: `Unstage the file if it is staged for addition. If the file is tracked by the
current commit, stage it for removal and delete it from the working directory.`,
	Args: cobra.ExactArgs(1),
	Run:  runRm,
}

func runAdd(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	if err := core.Add(c.Ctx, c.Repo, args[0]); err != nil {
		exitError("%v", err)
	}
}

func runRm(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	if err := core.Remove(c.Ctx, c.Repo, args[0]); err != nil {
		exitError("%v", err)
	}
}
