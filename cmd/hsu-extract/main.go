// Command hsu-extract converts .pptx decks into the flattened JSON
// playback model consumed by the web front end.
//
// Given a directory it discovers and converts every .pptx file in it,
// sorted by name; given a single file it converts just that file. Each
// deck is written as <name>.json next to its input, or into --out.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	extractor "github.com/matttrice/hsu-extractor"
)

func main() {
	root := newRootCmd()
	root.Version = extractor.Version
	root.SetVersionTemplate("{{.Version}}\n")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "hsu-extract [path]",
		Short: "Convert .pptx decks into the flattened playback model",
		Long: "hsu-extract reads PowerPoint files, flattens their animation timing\n" +
			"into an ordered step sequence, resolves custom-show hyperlinks into\n" +
			"embedded content, and writes one JSON model per deck.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return run(v, path)
		},
	}

	flags := cmd.Flags()
	flags.String("out", "", "output directory (default: next to each input file)")
	flags.String("units", string(extractor.UnitEMU), "output coordinate units: emu, pt or px")
	flags.Bool("indent", true, "indent the JSON output")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Int("jobs", 4, "number of files converted concurrently")
	for _, name := range []string{"out", "units", "indent", "log-level", "jobs"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	return cmd
}

func run(v *viper.Viper, path string) error {
	v.SetDefault("out", "")
	v.SetDefault("units", string(extractor.UnitEMU))
	v.SetDefault("indent", true)
	v.SetDefault("log-level", "info")
	v.SetDefault("jobs", 4)

	v.SetConfigName("hsu-extractor.cfg")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", v.GetString("log-level"), err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	files, err := discover(path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .pptx files found in %s", path)
	}

	opts := &extractor.WriteOptions{
		Units:  extractor.Unit(v.GetString("units")),
		Indent: v.GetBool("indent"),
	}
	outDir := v.GetString("out")

	// Every file is an independent computation over immutable inputs, so
	// conversions run in parallel.
	var g errgroup.Group
	g.SetLimit(v.GetInt("jobs"))
	for _, file := range files {
		file := file
		g.Go(func() error {
			return convert(logger, file, outDir, opts)
		})
	}
	return g.Wait()
}

// discover lists the .pptx files under path, sorted by name. A plain file
// path is returned as-is.
func discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := filepath.Glob(filepath.Join(path, "*.pptx"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func convert(logger zerolog.Logger, path, outDir string, opts *extractor.WriteOptions) error {
	log := logger.With().Str("file", filepath.Base(path)).Logger()

	reader := extractor.NewReader()
	reader.Logger = log

	deck, warn, err := reader.Read(path)
	if err != nil {
		log.Error().Err(err).Msg("extraction failed")
		return err
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
		outPath = filepath.Join(outDir, filepath.Base(outPath))
	}
	if err := deck.SaveJSON(outPath, opts); err != nil {
		log.Error().Err(err).Msg("write failed")
		return err
	}

	log.Info().
		Int("slides", len(deck.Slides)).
		Int("warnings", warn.Len()).
		Str("out", outPath).
		Msg("deck converted")
	return nil
}
