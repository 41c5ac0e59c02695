package definition

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// Ext is the file extension LoadDir picks up.
const Ext = ".toml"

// Parse decodes and validates a definition. The result has no name unless
// the data sets one; Load falls back to the file name.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode definition")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	f.revision = cache.Hash(data)
	return &f, nil
}

// Load reads and parses the definition at path. A file without a name
// takes the base name of path without the extension.
func Load(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s", path)
		}
		return nil, fmt.Errorf("read definition: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.ChartName == "" {
		f.ChartName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := errors.ValidateChartName(f.ChartName); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// LoadDir loads every definition file in dir, in name order, and registers
// each under its chart name. It stops at the first failure.
func LoadDir(dir string, reg *chart.Registry) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart directory %s", dir)
		}
		return nil, fmt.Errorf("read chart directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	files := make([]*File, 0, len(paths))
	for _, path := range paths {
		f, err := Load(path)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(f.ChartName, f.factory); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		files = append(files, f)
	}
	return files, nil
}

// factory hands out the file itself; Define and Data never modify it.
func (f *File) factory() chart.Definition { return f }

// validate checks what decoding cannot: refresh range, colors, the
// shape of the data tables and every constrained option. The option
// checks run by configuring a scratch chart.
func (f *File) validate() error {
	if f.Refresh != 0 {
		if err := chart.ValidateRefreshTime(f.Refresh); err != nil {
			return err
		}
	}
	for i, s := range f.Series {
		if err := errors.ValidateColor(s.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "series %d (%s)", i, s.Name)
		}
	}
	if f.Pie != nil {
		if len(f.Series) > 0 || len(f.Points) > 0 {
			return errors.New(errors.ErrCodeInvalidDefinition, "[pie] cannot be combined with [[series]] or [[points]]")
		}
		if len(f.Pie.Labels) != len(f.Pie.Data) {
			return errors.New(errors.ErrCodeInvalidDefinition,
				"pie has %d labels for %d values", len(f.Pie.Labels), len(f.Pie.Data))
		}
		for _, color := range f.Pie.Colors {
			if err := errors.ValidateColor(color); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "pie")
			}
		}
	}
	for _, p := range f.Points {
		if len(p.Values) != len(f.Series) {
			return errors.New(errors.ErrCodeSeriesMismatch,
				"point %q has %d values for %d series", p.Label, len(p.Values), len(f.Series))
		}
	}
	if _, err := chart.Build(context.Background(), f, "", chart.DefaultConfig()); err != nil {
		return err
	}
	return nil
}
