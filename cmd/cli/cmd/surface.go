// Package cmd - surface commands
package cmd

import (
	"context"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"site-quote/adapters/export"
	"site-quote/adapters/terminal"
	"site-quote/core/surface"
	"site-quote/core/ui"
	"site-quote/internal/config"
	"site-quote/internal/errors"
	"site-quote/internal/logging"
)

var (
	surfaceVariant string
	surfaceFPS     int
	surfaceSeed    uint64
	reducedMotion  bool

	exportSize   string
	exportFrames int
	exportOut    string
	exportPrefix string
	exportStatic bool
)

// surfaceCmd groups the animated background commands
var surfaceCmd = &cobra.Command{
	Use:   "surface",
	Short: "Animated page backgrounds",
	Long: `Run or export the decorative backgrounds of the quote page.

rain    falling drops with occasional lightning flashes
ripple  a water surface disturbed by random drops`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var surfaceRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a background in the terminal (q, Esc or Ctrl-C quits)",
	Args:  cobra.NoArgs,
	RunE:  runSurface,
}

var surfaceExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a background to PNG frames",
	Long: `Render a background to numbered PNG frames.

Frames are stepped on simulated time, so a given seed always produces the
same files.

Examples:
  site-quote surface export --variant ripple --frames 120 --out frames
  site-quote surface export --size 1280x720 --static --out poster`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	for _, c := range []*cobra.Command{surfaceRunCmd, surfaceExportCmd} {
		c.Flags().StringVar(&surfaceVariant, "variant", "", "effect (rain, ripple)")
		c.Flags().IntVar(&surfaceFPS, "fps", 0, "frames per second")
		c.Flags().Uint64Var(&surfaceSeed, "seed", 0, "random seed, 0 picks one")
	}
	surfaceRunCmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "show a single static frame")

	surfaceExportCmd.Flags().StringVar(&exportSize, "size", "320x180", "frame size WxH in pixels")
	surfaceExportCmd.Flags().IntVar(&exportFrames, "frames", 60, "number of frames")
	surfaceExportCmd.Flags().StringVarP(&exportOut, "out", "o", "frames", "output directory")
	surfaceExportCmd.Flags().StringVar(&exportPrefix, "prefix", "frame", "file name prefix")
	surfaceExportCmd.Flags().BoolVar(&exportStatic, "static", false, "write the single reduced-motion frame")

	surfaceCmd.AddCommand(surfaceRunCmd)
	surfaceCmd.AddCommand(surfaceExportCmd)
}

// surfaceConfig merges the configured surface settings with the flags
func surfaceConfig(cmd *cobra.Command) (config.SurfaceConfig, error) {
	cfg := config.Get().Surface
	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Variant = surfaceVariant
	}
	if flags.Changed("fps") {
		cfg.FPS = surfaceFPS
	}
	if flags.Changed("seed") {
		cfg.Seed = surfaceSeed
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runSurface(cmd *cobra.Command, args []string) error {
	cfg, err := surfaceConfig(cmd)
	if err != nil {
		return err
	}
	sim, err := surface.New(cfg.Config)
	if err != nil {
		return err
	}

	if err := logging.RedirectForTerminal(config.Get().Logging); err != nil {
		return errors.Config("initialize logging", err)
	}
	log := logging.Named("surface")
	log.Info("starting surface",
		zap.String("variant", cfg.Variant),
		zap.Int("fps", cfg.FPS),
		zap.Uint64("seed", cfg.Seed),
		zap.Bool("reduced_motion", cfg.ReducedMotion))

	screen, err := terminal.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host := terminal.New(screen, cfg.ReducedMotion, log)
	anim := surface.NewAnimator(sim, host, surface.SystemClock{}, surface.Options{
		FPS:                  cfg.FPS,
		RespectReducedMotion: cfg.RespectReducedMotion,
		Logger:               log,
	})
	if err := anim.Start(ctx); err != nil {
		return err
	}

	runErr := host.Run(ctx)
	cancel()
	anim.Stop()
	log.Info("surface stopped", zap.Uint64("frames", anim.Frames()))

	if runErr != nil {
		return runErr
	}
	return anim.Wait()
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := surfaceConfig(cmd)
	if err != nil {
		return err
	}
	size, err := parseSize(exportSize)
	if err != nil {
		return err
	}
	sim, err := surface.New(cfg.Config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := export.Render(ctx, sim, export.Options{
		Dir:      exportOut,
		Size:     size,
		Frames:   exportFrames,
		FPS:      cfg.FPS,
		Prefix:   exportPrefix,
		Static:   exportStatic,
		Progress: cmd.ErrOrStderr(),
		Logger:   logging.Named("export"),
	})
	if err != nil {
		return err
	}

	out := ui.NewWriter(cmd.OutOrStdout(), colorDisabled())
	out.Success("wrote %d frame(s) to %s (variant %s, seed %d)", len(paths), exportOut, cfg.Variant, cfg.Seed)
	return nil
}

// parseSize parses WxH
func parseSize(s string) (surface.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return surface.Size{}, errors.Newf(errors.TypeInput, "invalid size %q (expected WxH, e.g. 320x180)", s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return surface.Size{}, errors.Newf(errors.TypeInput, "invalid size %q (expected WxH, e.g. 320x180)", s)
	}
	return surface.Size{W: w, H: h}, nil
}
