/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Image decoders for job sources.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"gocaptioner/internal/caption"
	"gocaptioner/internal/catalog"
	"gocaptioner/internal/compose"
	applog "gocaptioner/internal/log"
	"gocaptioner/internal/presets"
	"log/slog"
)

// Runner executes render jobs. Zero values get defaults: the builtin preset
// library, the basic raster face, png output into the working directory.
// Catalog is optional; when set every successful render is recorded.
type Runner struct {
	Measurer caption.Measurer
	Library  *presets.Library
	Options  compose.Options
	Preset   string
	Format   string
	OutDir   string
	Catalog  *catalog.Catalog
}

// Result describes one finished render.
type Result struct {
	Job        Job
	OutputPath string
	Plan       caption.LayoutPlan
}

func (r *Runner) defaults() Runner {
	out := *r
	if out.Library == nil {
		out.Library = presets.Builtin()
	}
	if out.Preset == "" {
		out.Preset = caption.PresetClassic
	}
	if out.Format == "" {
		out.Format = "png"
	}
	if out.OutDir == "" {
		out.OutDir = "."
	}
	return out
}

// RenderOne runs the full pipeline for a single job: decode the source,
// plan the caption layout, render, write the output file.
func (r *Runner) RenderOne(ctx context.Context, job Job) (Result, error) {
	ru := r.defaults()
	if ru.Measurer == nil {
		return Result{}, errors.New("runner has no measurer")
	}

	presetName := job.Preset
	if presetName == "" {
		presetName = ru.Preset
	}
	cfg, ok := ru.Library.Get(presetName)
	if !ok {
		return Result{}, fmt.Errorf("unknown preset %q", presetName)
	}
	format := job.Format
	if format == "" {
		format = ru.Format
	}

	f, err := os.Open(job.Image)
	if err != nil {
		return Result{}, fmt.Errorf("open image: %w", err)
	}
	src, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return Result{}, fmt.Errorf("decode %s: %w", job.Image, err)
	}
	bounds := src.Bounds()

	plan, err := caption.Plan(job.Caption, ru.Measurer, cfg, float64(bounds.Dx()), float64(bounds.Dy()))
	if err != nil {
		return Result{}, fmt.Errorf("plan caption: %w", err)
	}

	outPath := job.Output
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(job.Image), filepath.Ext(job.Image))
		outPath = filepath.Join(ru.OutDir, base+"-captioned."+format)
	} else if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(ru.OutDir, outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Result{}, fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("create output: %w", err)
	}
	if err := compose.Render(out, format, src, plan, ru.Options); err != nil {
		_ = out.Close()
		_ = os.Remove(outPath)
		return Result{}, fmt.Errorf("render: %w", err)
	}
	if err := out.Close(); err != nil {
		return Result{}, fmt.Errorf("close output: %w", err)
	}

	if ru.Catalog != nil {
		_, rerr := ru.Catalog.Record(ctx, catalog.Render{
			SourcePath:   job.Image,
			OutputPath:   outPath,
			Preset:       presetName,
			Format:       format,
			Caption:      job.Caption,
			LineCount:    len(plan.Lines),
			CanvasWidth:  plan.CanvasWidth,
			CanvasHeight: plan.CanvasHeight,
		})
		if rerr != nil {
			// A failed catalog write must not fail the render itself.
			applog.WithComponent("batch").Warn("catalog record failed", slog.Any("err", rerr))
		}
	}
	return Result{Job: job, OutputPath: outPath, Plan: plan}, nil
}

// Run executes the jobs in order. Failures are collected per job with the
// job's line number; remaining jobs still run.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, []Error) {
	l := applog.WithOperation(applog.WithComponent("batch"), "run")
	var results []Result
	var errs []Error
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, Error{Line: job.LineNo, Message: err.Error()})
			break
		}
		res, err := r.RenderOne(ctx, job)
		if err != nil {
			l.Warn("job failed", slog.Int("line", job.LineNo), slog.Any("err", err))
			errs = append(errs, Error{Line: job.LineNo, Message: err.Error()})
			continue
		}
		l.Info("job done", slog.Int("line", job.LineNo), slog.String("out", res.OutputPath))
		results = append(results, res)
	}
	return results, errs
}
