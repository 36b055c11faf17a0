package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prettyplots/internal/recipe"
)

var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template [plot|heatmap|hist]",
	Short: "Print a starter recipe for the given figure kind",
	Long: `Emits a complete recipe skeleton with every knob listed at its
default value. Pipe it to a file, fill in the data, and render:

  prettyplots template plot > decay.yaml
  prettyplots render decay.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := recipe.Starter(args[0])
		if err != nil {
			return err
		}
		if templateOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		}
		if _, err := os.Stat(templateOut); err == nil {
			return fmt.Errorf("%s already exists", templateOut)
		}
		if err := os.WriteFile(templateOut, []byte(doc), 0644); err != nil {
			return fmt.Errorf("failed to write template: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", templateOut)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "write to a file instead of stdout")
}
