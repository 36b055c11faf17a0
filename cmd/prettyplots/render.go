package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prettyplots/internal/gallery"
	"prettyplots/internal/recipe"
	"prettyplots/internal/watch"
)

var (
	renderOutput string
	renderFormat string
	renderWatch  bool
)

var renderCmd = &cobra.Command{
	Use:   "render [recipe.yaml...]",
	Short: "Render figures from recipe files",
	Long: `Reads each YAML recipe and writes the figure it describes. The
output format follows the file extension (pdf, png, svg, eps, jpg,
tif); without an explicit output the recipe filename decides the name
and the configured default format decides the extension.

With --watch the command keeps running and re-renders a recipe every
time it changes on disk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (single recipe only)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format override (pdf, png, svg, eps, jpg, tif)")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "re-render recipes when they change")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output works with a single recipe, got %d", len(args))
	}

	var store *gallery.Store
	if cfg.Gallery.Enabled {
		var err error
		store, err = gallery.Open(galleryPath())
		if err != nil {
			// History is a convenience; a broken database must not
			// block rendering.
			logger.Warn("gallery unavailable", zap.Error(err))
		} else {
			defer store.Close()
		}
	}

	renderOne := func(path string) error {
		r, err := recipe.Load(path)
		if err != nil {
			return err
		}
		out, err := outputFor(r, path)
		if err != nil {
			return err
		}
		applyConfigDefaults(r)
		if err := r.Render(out); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Info("rendered figure",
			zap.String("recipe", path),
			zap.String("output", out),
			zap.String("kind", r.Kind))
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, out)

		if store != nil {
			sum, err := fileSHA256(out)
			if err != nil {
				logger.Warn("failed to hash output", zap.Error(err))
			}
			format := strings.TrimPrefix(filepath.Ext(out), ".")
			if _, err := store.Record(r.Kind, path, out, format, sum); err != nil {
				logger.Warn("failed to record render", zap.Error(err))
			}
		}
		return nil
	}

	for _, path := range args {
		if err := renderOne(path); err != nil {
			if !renderWatch {
				return err
			}
			// Watch mode keeps going; the next save gets another try.
			logger.Error("render failed", zap.String("recipe", path), zap.Error(err))
		}
	}

	if !renderWatch {
		return nil
	}

	w, err := watch.New(args, cfg.GetDebounce(), func(path string) {
		if err := renderOne(path); err != nil {
			logger.Error("render failed", zap.String("recipe", path), zap.Error(err))
		}
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Start(ctx)
	defer w.Stop()

	fmt.Fprintln(cmd.OutOrStdout(), "watching for changes (ctrl-c to stop)")
	<-ctx.Done()

	stats := w.GetStats()
	logger.Info("watch stopped", zap.Int("events", stats.Events), zap.Int("renders", stats.Renders))
	return nil
}

// outputFor decides where a recipe renders to: the --output flag, then
// the recipe's own output field, then the recipe filename with the
// configured default extension. Relative paths land in the configured
// output directory.
func outputFor(r *recipe.Recipe, recipePath string) (string, error) {
	out := renderOutput
	if out == "" {
		out = r.Output
	}
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(recipePath), filepath.Ext(recipePath))
		out = base + cfg.Ext()
	}
	if renderFormat != "" {
		ext := "." + strings.TrimPrefix(renderFormat, ".")
		out = strings.TrimSuffix(out, filepath.Ext(out)) + ext
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(cfg.Output.Dir, out)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return out, nil
}

// applyConfigDefaults fills recipe figure slots that the config owns.
func applyConfigDefaults(r *recipe.Recipe) {
	if r.Figure.DPI == 0 {
		r.Figure.DPI = cfg.Output.DPI
	}
}

// fileSHA256 returns the hex digest of the file's contents.
func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func galleryPath() string {
	path := cfg.Gallery.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspace, path)
	}
	return path
}
