package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/phanxgames/flipbook"
	"github.com/phanxgames/flipbook/ebitenview"
	"github.com/phanxgames/flipbook/internal/bookfile"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile    string
	debug         bool
	width         int
	height        int
	startFromBack bool
	scriptFile    string
	contentRoot   string
	showFPS       bool
	shotDir       string
	dt            float64
	duration      float64
	tracePage     int
)

// main is the entry point for the flipbook CLI.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "flipbook",
		Short:        "picture book page-turn reader",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	viewCmd := &cobra.Command{
		Use:   "view [book]",
		Short: "open a book in a window",
		Args:  cobra.ExactArgs(1),
		RunE:  viewBook,
	}
	viewCmd.Flags().IntVar(&width, "width", 1280, "window width")
	viewCmd.Flags().IntVar(&height, "height", 720, "window height")
	viewCmd.Flags().BoolVar(&startFromBack, "start-from-back", false, "open at the back cover")
	viewCmd.Flags().StringVar(&scriptFile, "script", "", "reading script to play (yaml or json)")
	viewCmd.Flags().StringVar(&contentRoot, "content-root", "", "directory holding book folders (default: the book's parent)")
	viewCmd.Flags().BoolVar(&showFPS, "fps", false, "show tps and fps")
	viewCmd.Flags().StringVar(&shotDir, "screenshots", "screenshots", "directory for script screenshots")

	traceCmd := &cobra.Command{
		Use:   "trace [book]",
		Short: "run a book headless and plot a page's curl",
		Args:  cobra.ExactArgs(1),
		RunE:  traceBook,
	}
	traceCmd.Flags().Float64Var(&dt, "dt", 0.01, "frame time in seconds")
	traceCmd.Flags().Float64Var(&duration, "time", 2.0, "duration in seconds")
	traceCmd.Flags().IntVar(&tracePage, "page", 0, "page whose bones are plotted")
	traceCmd.Flags().StringVar(&scriptFile, "script", "", "reading script (default: go to the back cover)")
	traceCmd.Flags().BoolVar(&startFromBack, "start-from-back", false, "open at the back cover")

	listCmd := &cobra.Command{
		Use:   "list [root]",
		Short: "list the books under a content root",
		Args:  cobra.ExactArgs(1),
		RunE:  listBooks,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  printConfig,
	}

	rootCmd.AddCommand(viewCmd, traceCmd, listCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*flipbook.Config, error) {
	if configFile == "" {
		return flipbook.DefaultConfig(), nil
	}
	cfg, err := flipbook.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func loadScript() (*flipbook.Script, error) {
	if scriptFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(scriptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return flipbook.ParseScript(data)
}

func loadBook(path string) (*flipbook.Book, error) {
	b, err := bookfile.Load(path)
	if err != nil {
		return nil, err
	}
	if startFromBack {
		b.StartFromBack = true
	}
	return b, nil
}

func viewBook(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := loadBook(args[0])
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}

	root := contentRoot
	if root == "" {
		dir := args[0]
		if filepath.Base(dir) == bookfile.ManifestName {
			dir = filepath.Dir(dir)
		}
		root = filepath.Dir(filepath.Clean(dir))
	}

	log := slog.Default()
	r := flipbook.NewReader(cfg, flipbook.WithLogger(log))
	if err := r.Open(b); err != nil {
		return err
	}
	return ebitenview.Run(r, ebitenview.RunConfig{
		Title:         b.Title,
		Width:         width,
		Height:        height,
		ContentRoot:   root,
		ShowFPS:       showFPS,
		ScreenshotDir: shotDir,
		Logger:        log,
	}, script)
}

func traceBook(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := loadBook(args[0])
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}
	if dt <= 0 {
		return fmt.Errorf("dt must be positive")
	}

	clk := flipbook.NewManualClock(time.Unix(0, 0))
	r := flipbook.NewReader(cfg, flipbook.WithClock(clk), flipbook.WithLogger(slog.Default()))
	if err := r.Open(b); err != nil {
		return err
	}
	if tracePage < 0 || tracePage >= len(b.Pages) {
		return fmt.Errorf("page %d out of range [0, %d)", tracePage, len(b.Pages))
	}

	start := clk.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tDELAYED\tTARGET")
	r.Navigator().OnStep(func(delayed int) {
		fmt.Fprintf(w, "%v\t%d\t%d\n", clk.Now().Sub(start), delayed, r.Navigator().Target())
	})

	var runner *flipbook.ScriptRunner
	if script != nil {
		runner = flipbook.NewScriptRunner(script, r, nil)
	} else if b.StartFromBack {
		r.First()
	} else {
		r.Last()
	}

	frame := time.Duration(dt * float64(time.Second))
	n := int(duration / dt)
	rootRot := make([]float64, 0, n)
	tipAngle := make([]float64, 0, n)
	chain := r.Page(tracePage).Chain()
	for i := 0; i < n; i++ {
		if runner != nil {
			runner.Step()
		}
		clk.Advance(frame)
		r.Update(frame)

		joints := chain.Pose(0)
		rootRot = append(rootRot, chain.Bone(0).RotY)
		tipAngle = append(tipAngle, joints[len(joints)-1].Angle)
	}
	w.Flush()

	fmt.Printf("\nbook: %s (%d pages)\n", b.ID, len(b.Pages))
	fmt.Printf("session: %s\n", r.Session())
	fmt.Printf("frames: %d at %v\n\n", n, frame)

	if n == 0 {
		return fmt.Errorf("no frames to plot")
	}
	fmt.Println(asciigraph.Plot(rootRot,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("page %d root rotation", tracePage)),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(tipAngle,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("page %d tip angle", tracePage)),
	))
	return nil
}

func listBooks(cmd *cobra.Command, args []string) error {
	entries, err := bookfile.Discover(args[0])
	if len(entries) == 0 && err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPAGES\tCOVER")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.ID, e.Title, e.Pages, e.Cover)
	}
	w.Flush()

	if err != nil {
		slog.Warn("Some books could not be read", "error", err)
	}
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
