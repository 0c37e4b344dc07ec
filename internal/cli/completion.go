package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for gitlet.

To load completions:

Bash:
  $ source <(gitlet completion bash)
  # Or add to ~/.bashrc:
  $ echo 'source <(gitlet completion bash)' >> ~/.bashrc

Zsh:
  $ source <(gitlet completion zsh)
  # Or add to ~/.zshrc:
  $ echo 'source <(gitlet completion zsh)' >> ~/.zshrc

Fish:
  $ gitlet completion fish | source
  # Or add to config:
  $ gitlet completion fish > ~/.config/fish/completions/gitlet.fish
`,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				rootCmd.GenFishCompletion(os.Stdout, true)
			}
		},
	})
}
