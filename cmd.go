package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tjjh89017/fxsandbox/internal/config"
	"github.com/tjjh89017/fxsandbox/internal/entity"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func newRootCommand() *cobra.Command {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "fxsandbox",
		Short: "Effect plugin sandbox",
		Long: `fxsandbox composes visual effect plugins onto a static scaffold,
applies them, and tears them down again without leaking listeners,
timers or injected nodes.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configDir != "" {
				config.Paths = append([]string{configDir}, config.Paths...)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "additional directory to search for config.yaml")

	rootCmd.AddCommand(
		newRunCommand(),
		newCheckCommand(),
		newListCommand(),
		newRenderCommand(),
	)

	return rootCmd
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Cycle the configured compositions until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			return d.Run(cmd.Context())
		},
	}
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Apply and tear down every configured composition once and check for leaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			return d.RunOneshot(cmd.Context())
		},
	}
}

func newListCommand() *cobra.Command {
	var category string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := setupRegistry(cmd.Context())
			if err != nil {
				return err
			}

			descriptors := registry.Descriptors()
			if category != "" {
				c, err := entity.ParseCategory(category)
				if err != nil {
					return err
				}
				descriptors = registry.ListByCategory(c)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), descriptors)
			}
			writeTable(cmd.OutOrStdout(), descriptors)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list plugins of this category (background, hover, text)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print descriptors as JSON")

	return cmd
}

func newRenderCommand() *cobra.Command {
	var plugins string
	var frames int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Apply plugins to a fresh scaffold and print the resulting HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			report, err := d.Render(cmd.Context(), cmd.OutOrStdout(), parsePluginIds(plugins), frames)
			if err != nil {
				return err
			}
			if !report.Clean() {
				fmt.Fprintf(cmd.ErrOrStderr(), "unresolved: %v, unmatched: %v, apply failures: %d\n",
					report.Unresolved, report.Unmatched, len(report.ApplyFailures))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&plugins, "plugins", "", "comma separated plugin ids")
	cmd.Flags().IntVar(&frames, "frames", 30, "animation frames to run before rendering")

	return cmd
}

func parsePluginIds(value string) []entity.PluginId {
	ids := []entity.PluginId{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, entity.PluginId(part))
	}
	return ids
}

func writeJSON(w io.Writer, descriptors []entity.Descriptor) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(descriptors)
}

func writeTable(w io.Writer, descriptors []entity.Descriptor) {
	header := fmt.Sprintf("%-18s │ %-18s │ %-10s │ %s", "ID", "NAME", "CATEGORY", "TARGET")
	fmt.Fprintln(w, headerStyle.Render(header))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(header)))

	for _, d := range descriptors {
		fmt.Fprintf(w, "%-18s │ %-18s │ %-10s │ %s\n", d.Id, d.DisplayName, d.Category, d.TargetSelector)
	}
}
