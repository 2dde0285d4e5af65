package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barysiuk/claudesync/internal/core"
	"github.com/barysiuk/claudesync/internal/tui"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Look up plugins in the extension registry",
	Long: `Plugins are not converted to extensions. When a plugin has a registry
equivalent, install that extension in Claude Desktop instead.

Extra mappings can be added under "registry" in ~/.claude-sync/config.json.`,
}

var registryLookupCmd = &cobra.Command{
	Use:   "lookup <plugin>",
	Short: "Show the registry extension for a plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		res := d.registry.Lookup(args[0])
		if !res.Found {
			fmt.Fprintf(out, "No registry entry for %q.\n", args[0])
			return nil
		}
		fmt.Fprintf(out, "%s is available in the registry as %q.\n\n", args[0], res.ExtensionID)
		fmt.Fprintln(out, core.RegistryInstallInstructions(res.ExtensionID))
		return nil
	},
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known plugin mappings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, tui.Heading("Registry:"))
		for _, name := range d.registry.Names() {
			fmt.Fprintf(out, "  %-20s %s\n", name, d.registry.Lookup(name).ExtensionID)
		}
		return nil
	},
}

var registryAddCmd = &cobra.Command{
	Use:   "add <plugin> <extension-id>",
	Short: "Map a plugin to a registry extension",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		cfg, err := d.config.Load()
		if err != nil {
			return err
		}
		name := strings.ToLower(strings.TrimSpace(args[0]))
		if name == "" {
			return fmt.Errorf("plugin name must not be empty")
		}
		cfg.Registry[name] = args[1]
		if err := d.config.Save(cfg); err != nil {
			return err
		}

		d.logger.Debug("registry entry saved", "plugin", name, "extension", args[1])
		fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s to %q in %s\n", name, args[1], d.config.ConfigPath())
		return nil
	},
}

func init() {
	registryCmd.AddCommand(registryLookupCmd)
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryAddCmd)
	rootCmd.AddCommand(registryCmd)
}
