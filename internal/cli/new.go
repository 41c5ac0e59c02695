package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apexkit/pkg/definition"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// newCommand creates the new command, which scaffolds a definition file.
func (c *CLI) newCommand() *cobra.Command {
	var (
		chartType string
		output    string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Scaffold a commented chart definition",
		Example: `  apexkit new monthly-sales
  apexkit new market-share --type donut -o charts/market-share.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			data, err := definition.Scaffold(name, chartType)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err := c.out.Write(data)
				return err
			}

			path := output
			if path == "" {
				path = name + definition.Ext
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeDuplicate, "%s already exists (use --force to overwrite)", path)
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write definition: %w", err)
			}

			c.ui.success("Created %s", name)
			c.ui.file(path)
			c.ui.nextStep("Render it", "apexkit render "+path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&chartType, "type", "t", "line", "chart type, e.g. line, bar, area, pie, donut")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (default NAME.toml, "-" for stdout)`)
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
