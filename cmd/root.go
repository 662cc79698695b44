package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"stprint/internal/config"
	"stprint/internal/logging"
	"stprint/internal/sanitize"

	"github.com/spf13/cobra"
)

var (
	configFile    string
	profileName   string
	verbose       bool
	colors        bool
	extraColors   bool
	excludeColors []string

	rootCmd = &cobra.Command{
		Use:   "stprint [untrusted text...]",
		Short: "Sanitize untrusted text before printing it to a terminal",
		Long: `stprint neutralizes terminal escape sequence injection (cursor
manipulation, screen clearing, title spoofing, query sequences) while
letting legitimate SGR color output through. Text is taken from the
arguments, joined with newlines, or read from stdin when no arguments
are given. The sanitized result is written to stdout.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s, err := buildSanitizer(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ %v\n", err)
				os.Exit(1)
			}

			var untrusted string
			if len(args) > 0 {
				untrusted = strings.Join(args, "\n")
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					fmt.Fprintf(os.Stderr, "❌ Failed to read stdin: %v\n", err)
					os.Exit(1)
				}
				untrusted = string(data)
			}

			out := s.Sanitize(untrusted)
			logging.Debug("sanitized", map[string]interface{}{
				"bytes_in":  len(untrusted),
				"bytes_out": len(out),
			})
			fmt.Print(out)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default ./stprint.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Named profile from the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&colors, "colors", true, "Allow SGR color sequences")
	rootCmd.PersistentFlags().BoolVar(&extraColors, "extra-colors", true, "Allow 8-bit and 24-bit color forms")
	rootCmd.PersistentFlags().StringArrayVar(&excludeColors, "exclude-color", nil, "SGR parameter to redact even when valid (repeatable)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads --config when given, otherwise ./stprint.yaml or
// built-in defaults.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.LoadDefault()
}

// buildSanitizer resolves options in ascending priority: sanitizer
// defaults, config file, --profile, explicit flags. It also initializes
// logging from the config's log level (--verbose forces debug).
func buildSanitizer(cmd *cobra.Command) (*sanitize.Sanitizer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = logging.LevelDebug
	}
	logging.Init(os.Stderr, lvl, map[string]interface{}{"app": "stprint"})

	opts := cfg.Options()
	if profileName != "" {
		opts, err = cfg.ProfileOptions(profileName)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("colors") {
		opts.Colors = colors
	}
	if flags.Changed("extra-colors") {
		opts.ExtraColors = extraColors
	}
	if flags.Changed("exclude-color") {
		opts.ExcludeColors = excludeColors
	}

	return sanitize.New(opts)
}
