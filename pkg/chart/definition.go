package chart

import (
	"context"
	"fmt"
	"reflect"

	"github.com/matzehuels/apexkit/pkg/errors"
)

// Definition describes one kind of chart.
//
// Define configures option nodes and adds series; it must not do I/O.
// Data fills in values and may query external sources, so it takes a
// context.
type Definition interface {
	Define(c *Chart) error
	Data(ctx context.Context, c *Chart) error
}

// Named is implemented by data-driven definitions that share a Go type,
// such as definitions loaded from files. The name becomes part of the
// chart identity.
type Named interface {
	Name() string
}

// Configurer is implemented by definitions that adjust the injected
// config, e.g. a definition file with its own refresh time.
type Configurer interface {
	ChartConfig(base Config) Config
}

// TypeName returns the identity name of a definition: its fully-qualified
// Go type name, suffixed with Name() for Named definitions.
func TypeName(def Definition) string {
	t := reflect.TypeOf(def)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.PkgPath() + "." + t.Name()
	if n, ok := def.(Named); ok {
		name += "#" + n.Name()
	}
	return name
}

// Configure creates a chart for def and runs its Define step. A
// Configurer definition sees cfg before the chart is created.
func Configure(def Definition, key string, cfg Config) (*Chart, error) {
	if def == nil {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "definition is nil")
	}
	if cc, ok := def.(Configurer); ok {
		cfg = cc.ChartConfig(cfg)
	}
	c, err := New(TypeName(def), key, cfg)
	if err != nil {
		return nil, err
	}
	if err := def.Define(c); err != nil {
		return nil, fmt.Errorf("define %s: %w", c.typeName, err)
	}
	return c, nil
}

// Populate runs the Data step of def on c.
func (c *Chart) Populate(ctx context.Context, def Definition) error {
	if err := def.Data(ctx, c); err != nil {
		return fmt.Errorf("data %s: %w", c.typeName, err)
	}
	return nil
}

// Build runs both steps of def and returns the finished chart.
func Build(ctx context.Context, def Definition, key string, cfg Config) (*Chart, error) {
	c, err := Configure(def, key, cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Populate(ctx, def); err != nil {
		return nil, err
	}
	return c, nil
}

// Funcs adapts a pair of functions to a Definition. Title is used as the
// identity name, so two Funcs with different titles get different ids.
// Nil functions are no-ops.
type Funcs struct {
	Title      string
	DefineFunc func(c *Chart) error
	DataFunc   func(ctx context.Context, c *Chart) error
}

func (f Funcs) Name() string { return f.Title }

func (f Funcs) Define(c *Chart) error {
	if f.DefineFunc == nil {
		return nil
	}
	return f.DefineFunc(c)
}

func (f Funcs) Data(ctx context.Context, c *Chart) error {
	if f.DataFunc == nil {
		return nil
	}
	return f.DataFunc(ctx, c)
}
