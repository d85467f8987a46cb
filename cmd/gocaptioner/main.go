/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gocaptioner/internal/batch"
	"gocaptioner/internal/catalog"
	"gocaptioner/internal/compose"
	"gocaptioner/internal/config"
	"gocaptioner/internal/crash"
	"gocaptioner/internal/fontpack"
	applog "gocaptioner/internal/log"
	"gocaptioner/internal/presets"
	"gocaptioner/internal/telemetry"
	"gocaptioner/internal/textmeasure"
	"gocaptioner/internal/version"
)

func usage() {
	fmt.Println("GoCaptioner — balanced caption cards for images")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gocaptioner version|-v|--version                 Show version")
	fmt.Println("  gocaptioner render [flags] <image> <caption...>  Render one captioned image")
	fmt.Println("  gocaptioner batch [flags] <jobfile>              Render every job in a job file")
	fmt.Println("  gocaptioner search [flags] <terms...>            Search past renders in the catalog")
	fmt.Println("  gocaptioner presets [flags]                      List available layout presets")
	fmt.Println("  gocaptioner fontpack export <fontsDir> <zip>     Bundle a fonts directory")
	fmt.Println("  gocaptioner fontpack install <fontsDir> <zip>    Install a font pack")
	fmt.Println()
	fmt.Println("Run 'gocaptioner <command> -h' for command flags.")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	tcfg := telemetry.FromEnv()
	if cfg.General.TelemetryOptIn {
		tcfg.OptIn = true
	}
	telemetry.NewDefault(tcfg)
	defer func() { crash.Recover(cfg.Render.OutDir) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}

	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("GoCaptioner — balanced caption cards for images")
		fmt.Println(version.String())
	case "render":
		runRender(cfg, args[2:])
	case "batch":
		runBatch(cfg, args[2:])
	case "search":
		runSearch(cfg, args[2:])
	case "presets":
		runPresets(cfg, args[2:])
	case "fontpack":
		runFontpack(args[2:])
	default:
		fmt.Println("Unknown command:", args[1])
		usage()
		os.Exit(2)
	}
}

// renderFlags are shared by render and batch.
type renderFlags struct {
	preset      string
	format      string
	outDir      string
	fontsDir    string
	fontPack    string
	presetsFile string
	fontFamily  string
	fontSize    float64
	noCatalog   bool
}

func bindRenderFlags(fs *flag.FlagSet, cfg config.AppConfig) *renderFlags {
	rf := &renderFlags{}
	fs.StringVar(&rf.preset, "preset", cfg.Render.Preset, "layout preset name")
	fs.StringVar(&rf.format, "format", cfg.Render.Format, "output format: png, svg or pdf")
	fs.StringVar(&rf.outDir, "outdir", cfg.Render.OutDir, "output directory")
	fs.StringVar(&rf.fontsDir, "fonts-dir", cfg.Render.FontsDir, "directory of TTF/OTF files")
	fs.StringVar(&rf.fontPack, "font-pack", cfg.Render.FontPack, "font pack zip to load")
	fs.StringVar(&rf.presetsFile, "presets", cfg.Render.PresetsFile, "JSON presets file merged over builtins")
	fs.StringVar(&rf.fontFamily, "font", "", "font family for caption text")
	fs.Float64Var(&rf.fontSize, "size", 16, "font size in points")
	fs.BoolVar(&rf.noCatalog, "no-catalog", false, "do not record the render in the catalog")
	return rf
}

// newRunner assembles the render pipeline: fonts, measurer, preset library,
// and optionally the catalog.
func newRunner(cfg config.AppConfig, rf *renderFlags) (*batch.Runner, func(), error) {
	lib := textmeasure.NewFontLibrary()
	if rf.fontsDir != "" {
		if err := lib.LoadDir(rf.fontsDir); err != nil {
			return nil, nil, fmt.Errorf("load fonts: %w", err)
		}
	}
	if rf.fontPack != "" {
		if _, err := fontpack.LoadInto(lib, rf.fontPack); err != nil {
			return nil, nil, fmt.Errorf("load font pack: %w", err)
		}
	}
	measurer, err := lib.NewMeasurer(textmeasure.FontSpec{Family: rf.fontFamily, SizePt: rf.fontSize})
	if err != nil {
		return nil, nil, fmt.Errorf("font %q: %w", rf.fontFamily, err)
	}

	presetLib := presets.Builtin()
	if rf.presetsFile != "" {
		presetLib, err = presets.Load(rf.presetsFile)
		if err != nil {
			return nil, nil, err
		}
	}

	r := &batch.Runner{
		Measurer: textmeasure.Cached(measurer),
		Library:  presetLib,
		Options:  compose.Options{Face: measurer.Face, FontFamily: rf.fontFamily, FontSizePt: rf.fontSize},
		Preset:   rf.preset,
		Format:   rf.format,
		OutDir:   rf.outDir,
	}
	cleanup := func() {}
	if cfg.General.CatalogEnabled && !rf.noCatalog {
		cat, err := catalog.Open(rf.outDir)
		if err != nil {
			return nil, nil, err
		}
		r.Catalog = cat
		cleanup = func() { _ = cat.Close() }
	}
	return r, cleanup, nil
}

func fail(err error) {
	applog.WithComponent("cli").Error("command failed", slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

func runRender(cfg config.AppConfig, args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	rf := bindRenderFlags(fs, cfg)
	output := fs.String("o", "", "output file (default <image>-captioned.<format> in outdir)")
	_ = fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Println("render requires <image> and <caption>")
		fs.Usage()
		os.Exit(2)
	}
	image := rest[0]
	captionText := strings.Join(rest[1:], " ")

	r, cleanup, err := newRunner(cfg, rf)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	res, err := r.RenderOne(context.Background(), batch.Job{
		Image: image, Caption: captionText, Output: *output,
	})
	if err != nil {
		fail(err)
	}
	telemetry.Event("render", map[string]any{
		"format": rf.format,
		"preset": rf.preset,
		"lines":  len(res.Plan.Lines),
	})
	fmt.Println("Rendered", res.OutputPath)
	fmt.Printf("Canvas: %dx%d, %d caption line(s)\n", res.Plan.CanvasWidth, res.Plan.CanvasHeight, len(res.Plan.Lines))
}

func runBatch(cfg config.AppConfig, args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	rf := bindRenderFlags(fs, cfg)
	_ = fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Println("batch requires <jobfile>")
		fs.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(rest[0])
	if err != nil {
		fail(fmt.Errorf("read job file: %w", err))
	}
	jobs, parseErrs := batch.Parse(string(data))
	for _, e := range parseErrs {
		fmt.Println("Job file:", e.Error())
	}
	if len(jobs) == 0 {
		fail(fmt.Errorf("no usable jobs in %s", rest[0]))
	}

	r, cleanup, err := newRunner(cfg, rf)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	results, runErrs := r.Run(context.Background(), jobs)
	for _, e := range runErrs {
		fmt.Println("Failed:", e.Error())
	}
	telemetry.Event("batch", map[string]any{
		"jobs":   len(jobs),
		"ok":     len(results),
		"failed": len(runErrs),
	})
	fmt.Printf("Rendered %d of %d job(s)\n", len(results), len(jobs))
	if len(runErrs) > 0 || len(parseErrs) > 0 {
		os.Exit(1)
	}
}

func runSearch(cfg config.AppConfig, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	outDir := fs.String("outdir", cfg.Render.OutDir, "output directory holding the catalog")
	preset := fs.String("preset", "", "filter by preset")
	format := fs.String("format", "", "filter by format")
	limit := fs.Int("limit", 20, "maximum results")
	_ = fs.Parse(args)

	cat, err := catalog.Open(*outDir)
	if err != nil {
		fail(err)
	}
	defer cat.Close()

	q := catalog.SearchQuery{
		Text:   strings.Join(fs.Args(), " "),
		Preset: *preset,
		Format: *format,
		Limit:  *limit,
	}
	results, err := cat.Search(context.Background(), q)
	if err != nil {
		fail(err)
	}
	if len(results) == 0 {
		fmt.Println("No matching renders.")
		return
	}
	for _, r := range results {
		line := fmt.Sprintf("%s  %-7s %-8s %s", r.CreatedAt.Format("2006-01-02 15:04"), r.Preset, r.Format, r.OutputPath)
		if r.Snippet != "" {
			line += "  " + r.Snippet
		}
		fmt.Println(line)
	}
}

func runPresets(cfg config.AppConfig, args []string) {
	fs := flag.NewFlagSet("presets", flag.ExitOnError)
	presetsFile := fs.String("presets", cfg.Render.PresetsFile, "JSON presets file merged over builtins")
	_ = fs.Parse(args)

	lib := presets.Builtin()
	if *presetsFile != "" {
		var err error
		lib, err = presets.Load(*presetsFile)
		if err != nil {
			fail(err)
		}
	}
	for _, name := range lib.Names() {
		c, _ := lib.Get(name)
		marker := " "
		if name == cfg.Render.Preset {
			marker = "*"
		}
		fmt.Printf("%s %-12s width=%g margins=%g/%g spacing=%g", marker, name, c.TargetImageWidth, c.MarginSides, c.MarginTop, c.LineSpacing)
		if c.MinLineHeight > 0 {
			fmt.Printf(" minline=%g", c.MinLineHeight)
		}
		if c.SquareAdjust {
			fmt.Print(" square")
		}
		fmt.Println()
	}
}

func runFontpack(args []string) {
	if len(args) < 3 {
		fmt.Println("fontpack requires export|install <fontsDir> <zip>")
		os.Exit(2)
	}
	switch args[0] {
	case "export":
		if err := fontpack.Export(args[1], args[2]); err != nil {
			fail(err)
		}
		fmt.Println("Exported font pack to", args[2])
	case "install":
		n, err := fontpack.Install(args[1], args[2])
		if err != nil {
			fail(err)
		}
		fmt.Printf("Installed %d font(s) into %s\n", n, args[1])
	default:
		fmt.Println("Unknown fontpack action:", args[0])
		os.Exit(2)
	}
}
