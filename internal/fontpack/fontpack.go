/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

// Package fontpack bundles a fonts directory into a portable .zip and
// installs or loads such packs on another machine. A pack is nothing
// more than the .ttf/.otf files plus a human-readable manifest.
package fontpack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "gocaptioner/internal/log"
	"gocaptioner/internal/textmeasure"
)

const manifestName = "fontpack.manifest.txt"

func isFontFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".ttf" || ext == ".otf"
}

// Export zips every font file found directly in fontsDir into destZipPath.
// The archive gets a small manifest at the root for quick human inspection.
// An empty fonts directory still produces an archive with only the manifest.
func Export(fontsDir string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("fontpack"), "export").With(slog.String("fonts", fontsDir))
	if strings.TrimSpace(fontsDir) == "" {
		return errors.New("fontsDir is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	entries, err := os.ReadDir(fontsDir)
	if err != nil {
		return fmt.Errorf("read fonts dir: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	manifest := fmt.Sprintf("GoCaptioner Font Pack\nCreated: %s\nSource: %s\n\nContents are the .ttf/.otf files of the source fonts directory.\n",
		time.Now().Format(time.RFC3339), fontsDir)
	w, err := zw.Create(manifestName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	added := 0
	for _, e := range entries {
		if e.IsDir() || !isFontFile(e.Name()) {
			continue
		}
		fw, err := zw.Create(e.Name())
		if err != nil {
			return fmt.Errorf("add %s: %w", e.Name(), err)
		}
		f, err := os.Open(filepath.Join(fontsDir, e.Name()))
		if err != nil {
			return fmt.Errorf("open %s: %w", e.Name(), err)
		}
		_, cerr := io.Copy(fw, f)
		_ = f.Close()
		if cerr != nil {
			return fmt.Errorf("copy %s: %w", e.Name(), cerr)
		}
		added++
	}
	l.Info("font pack exported", slog.Int("files", added), slog.String("zip", destZipPath))
	return nil
}

// Install extracts the font files of a pack into fontsDir. Existing files
// are not overwritten; skipped files are not counted. Entries with path
// separators or non-font extensions are ignored.
func Install(fontsDir string, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("fontpack"), "install").With(slog.String("fonts", fontsDir))
	if strings.TrimSpace(fontsDir) == "" {
		return 0, errors.New("fontsDir is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	if err := os.MkdirAll(fontsDir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure fonts dir: %w", err)
	}

	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		// Flatten: only root-level font files are installed, which also
		// keeps traversal tricks out of the fonts directory.
		name := f.Name
		if f.FileInfo().IsDir() || name != filepath.Base(name) || !isFontFile(name) {
			continue
		}
		targetPath := filepath.Join(fontsDir, name)
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing font", slog.String("path", targetPath))
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return installed, err
		}
		out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			_ = rc.Close()
			return installed, err
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return installed, err
		}
		_ = out.Close()
		_ = rc.Close()
		installed++
	}
	l.Info("font pack installed", slog.Int("files", installed))
	return installed, nil
}

// LoadInto registers the pack's fonts directly into a font library without
// extracting them to disk. The file name without extension becomes the
// family, regular weight, matching FontLibrary.LoadDir.
func LoadInto(lib *textmeasure.FontLibrary, packZipPath string) (int, error) {
	if lib == nil {
		return 0, errors.New("font library is required")
	}
	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	loaded := 0
	for _, f := range r.File {
		name := f.Name
		if f.FileInfo().IsDir() || name != filepath.Base(name) || !isFontFile(name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return loaded, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return loaded, fmt.Errorf("read %s: %w", name, err)
		}
		family := strings.TrimSuffix(name, filepath.Ext(name))
		if err := lib.LoadBytes(family, 400, false, data); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}
