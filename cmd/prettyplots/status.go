package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"prettyplots/internal/gallery"
	"prettyplots/pkg/plots"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active configuration and render history summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		source := cfgPath
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			source = fmt.Sprintf("%s (not found, using defaults)", cfgPath)
		}
		fmt.Fprintf(out, "version:     %s\n", version)
		fmt.Fprintf(out, "config:      %s\n", source)
		fmt.Fprintf(out, "output dir:  %s\n", cfg.Output.Dir)
		fmt.Fprintf(out, "format:      %s (dpi %g)\n", cfg.Output.Format, cfg.Output.DPI)
		fmt.Fprintf(out, "formats:     %s\n", strings.Join(plots.Formats, " "))
		fmt.Fprintf(out, "debounce:    %s\n", cfg.GetDebounce())

		if !cfg.Gallery.Enabled {
			fmt.Fprintln(out, "gallery:     disabled")
			return nil
		}
		store, err := gallery.Open(galleryPath())
		if err != nil {
			fmt.Fprintf(out, "gallery:     unavailable (%v)\n", err)
			return nil
		}
		defer store.Close()

		n, err := store.Count()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "gallery:     %s (%d renders)\n", galleryPath(), n)
		return nil
	},
}
