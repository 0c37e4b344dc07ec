package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/kilupskalvis/gitlet/internal/remote"
	"github.com/spf13/cobra"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage remote repositories",
	Long: `Manage the set of repositories whose branches you track.

Without a subcommand, lists all configured remotes.

Examples:
  gitlet remote                                 List all remotes
  gitlet remote add origin ../other/.gitlet     Add a remote named 'origin'
  gitlet remote remove origin                   Remove a remote`,
	Args: cobra.NoArgs,
	Run:  runRemoteList,
}

var remoteVerbose bool

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Add a new remote",
	Long: `Add a remote repository with the given name. The path names another
repository's directory or its .gitlet directory; relative paths are resolved
against this repository's working directory.`,
	Args: cobra.ExactArgs(2),
	Run:  runRemoteAdd,
}

var remoteRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a remote",
	Long:    `Remove a remote and all its remote-tracking branches.`,
	Args:    cobra.ExactArgs(1),
	Run:     runRemoteRemove,
}

var addRemoteCmd = &cobra.Command{
	Use:   "add-remote <name> <path>",
	Short: "Add a new remote",
	Long:  remoteAddCmd.Long,
	Args:  cobra.ExactArgs(2),
	Run:   runRemoteAdd,
}

var rmRemoteCmd = &cobra.Command{
	Use:   "rm-remote <name>",
	Short: "Remove a remote",
	Long:  remoteRemoveCmd.Long,
	Args:  cobra.ExactArgs(1),
	Run:   runRemoteRemove,
}

func init() {
	remoteCmd.Flags().BoolVarP(&remoteVerbose, "verbose", "v", false, "Show remote paths")

	remoteCmd.AddCommand(remoteAddCmd)
	remoteCmd.AddCommand(remoteRemoveCmd)
}

func runRemoteList(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	remotes, err := core.ListRemotes(c.Repo)
	if err != nil {
		exitError("%v", err)
	}

	for _, r := range remotes {
		if remoteVerbose {
			fmt.Printf("%s\t%s\n", r.Name, r.Path)
		} else {
			fmt.Println(r.Name)
		}
	}
}

func runRemoteAdd(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	name, path := args[0], args[1]
	if err := core.AddRemote(c.Repo, name, path); err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("Added remote '%s' (%s)\n", name, path)
}

func runRemoteRemove(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	if err := core.RemoveRemote(c.Repo, args[0]); err != nil {
		exitError("%v", err)
	}
	fmt.Printf("Removed remote '%s'\n", args[0])
}

// openRemote opens a configured remote or exits.
func openRemote(c *cmdContext, name string) *remote.LocalClient {
	client, err := core.OpenRemote(c.Ctx, c.Repo, name)
	if err != nil {
		exitError("%v", err)
	}
	return client
}

// printProgress renders transfer progress on a single line.
func printProgress(phase string, current, total int) {
	if total > 0 {
		fmt.Printf("\r  %s %d/%d", phase, current, total)
	}
}
