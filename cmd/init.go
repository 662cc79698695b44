package cmd

import (
	"fmt"
	"os"

	"stprint/internal/config"

	"github.com/spf13/cobra"
)

const configTemplate = `# stprint configuration. Every key is optional; absent keys fall back
# to the built-in defaults (colors and extra colors allowed, nothing
# excluded).

# Allow SGR color sequences at all.
colors: true

# Allow 8-bit (38;5;N) and 24-bit (38;2;R;G;B) color forms.
extra_colors: true

# SGR parameters to redact even though they are valid. Matched as
# literal tokens; a sequence containing one is redacted as a whole.
# exclude_colors: ["30", "38;5;0"]

# debug, info, warn or error. Diagnostics go to stderr.
log_level: info

# Named overrides selectable with --profile or the menu.
profiles:
  plain:
    colors: false
  basic:
    extra_colors: false
`

// newInitCmd creates the init subcommand: write a starter stprint.yaml.
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter stprint.yaml in the current directory",
		Run: func(cmd *cobra.Command, args []string) {
			if config.ConfigExists() {
				fmt.Printf("❌ %s already exists\n", config.GetConfigPath())
				os.Exit(1)
			}
			if err := os.WriteFile(config.ConfigFileName, []byte(configTemplate), 0644); err != nil {
				fmt.Printf("❌ Failed to write %s: %v\n", config.ConfigFileName, err)
				os.Exit(1)
			}
			fmt.Printf("✅ Created %s\n", config.ConfigFileName)
		},
	}
	return cmd
}
