// Package pkg provides the core libraries for apexkit.
//
// # Overview
//
// apexkit builds ApexCharts configurations on the server. A chart is
// described once in Go (or in a TOML definition file), configured with
// typed option nodes, filled with series data and serialized into the JSON
// the browser library consumes. JavaScript callbacks survive serialization
// as raw script.
//
// The typical data flow:
//
//	Definition (Go type or TOML file)
//	         ↓
//	    [chart] Configure: option nodes, series, colors
//	         ↓
//	    [chart] Populate: labels and values
//	         ↓
//	    [pipeline] render options / data / html, through [cache]
//	         ↓
//	    [server] or the CLI
//
// # Quick Start
//
//	def := chart.Funcs{
//	    Title: "sales",
//	    DefineFunc: func(c *chart.Chart) error {
//	        if err := c.Canvas().SetType("bar"); err != nil {
//	            return err
//	        }
//	        c.AddSerie("Sales", "#FF0000").AddSerie("Cost", "#00FF00")
//	        return nil
//	    },
//	    DataFunc: func(ctx context.Context, c *chart.Chart) error {
//	        if err := c.AppendFloats("Jan", 100, 40); err != nil {
//	            return err
//	        }
//	        return c.AppendFloats("Feb", 120, 50)
//	    },
//	}
//
//	c, _ := chart.Build(ctx, def, "store-42", chart.DefaultConfig())
//	options, _ := c.JSONOptions()
//	data, _ := c.MarshalData()
//
// # Main Packages
//
// [chart] - The chart builder: identity, series and label store, option
// aggregation and serialization. Subpackages hold the option nodes
// ([chart/option]), the ordered option tree and its encoder ([chart/tree])
// and the HTML embed snippet ([chart/embed]).
//
// [definition] - TOML chart definitions, loaded one by one or per
// directory into a [chart.Registry].
//
// [pipeline] - Build and render with caching, shared by the CLI and the
// server.
//
// [cache] - Artifact caches: file, Redis and MongoDB backends plus a null
// cache.
//
// [server] - HTTP endpoints for options, polled data and embed pages.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for build, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
package pkg
