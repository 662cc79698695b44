package cmd

import (
	"fmt"
	"os"

	"stprint/internal/sanitize"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const menuDefaults = "defaults"

// newMenuCmd creates the menu subcommand: pick a config profile
// interactively, then sanitize a file with it.
func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactively pick a profile and sanitize a file",
		Run: func(cmd *cobra.Command, args []string) {
			if err := showMenu(); err != nil {
				fmt.Fprintf(os.Stderr, "❌ %v\n", err)
				os.Exit(1)
			}
		},
	}
	return cmd
}

func showMenu() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	items := append([]string{menuDefaults}, cfg.ProfileNames()...)
	sel := promptui.Select{
		Label: "Select a sanitizer profile",
		Items: items,
		Size:  10,
	}
	_, choice, err := sel.Run()
	if err != nil {
		return fmt.Errorf("menu cancelled: %w", err)
	}

	opts := cfg.Options()
	if choice != menuDefaults {
		opts, err = cfg.ProfileOptions(choice)
		if err != nil {
			return err
		}
	}
	s, err := sanitize.New(opts)
	if err != nil {
		return err
	}

	prompt := promptui.Prompt{Label: "File to sanitize"}
	path, err := prompt.Run()
	if err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	fmt.Print(s.Sanitize(string(data)))
	return nil
}
