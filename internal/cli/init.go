package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new gitlet repository",
	Long: `Create a .gitlet directory in the current directory with an initial commit
on the master branch.`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

func runInit(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitError("%v", err)
	}

	repo, err := core.Init(context.Background(), cwd, newLogger(config.ParseLevel(config.DefaultLogLevel)))
	if err != nil {
		exitError("%v", err)
	}
	defer repo.Close()

	green := color.New(color.FgGreen)
	green.Printf("Initialized empty gitlet repository in %s\n", repo.Config.GitletPath())
}
