// Package pkg provides the core libraries of teeforge, a procedural
// T-shirt style image generator.
//
// # Overview
//
// Teeforge turns a seed into a layered raster design: a base fill, a color
// palette, translucent shapes, line splashes, noise, a rotated word and a
// final smoothing pass. The pkg directory is organized into three areas:
//
//  1. [core] - Image generation (seed, palette, canvas, shapes, effects, overlay)
//  2. [pipeline] - Orchestration of the stages, caching and encoding
//  3. Infrastructure - [cache], [fonts], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of one design:
//
//	seed text
//	    ↓
//	[core/seed] (resolve to a 32-bit seed, derive two random streams)
//	    ↓
//	[core/canvas] (base fill) → [core/palette] (color list)
//	    ↓
//	[core/shapes] → [core/effects] splash → [core/effects] noise
//	    ↓
//	[core/overlay] (rotated word, [fonts] fallback chain)
//	    ↓
//	[core/effects] smooth → PNG
//
// # Quick Start
//
// Generate a design and write it to disk:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/teeforge/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = "summer drop"
//	res, err := runner.Execute(context.Background(), opts)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.Filename, res.PNG, 0o644)
//
// # Main Packages
//
// ## Image Generation
//
// [core/seed] - Seed resolution (integers modulo 2^32, text hashing, random)
// and the two PCG streams every stage draws from.
//
// [core/palette] - Color-harmony strategies: random, complementary, triadic,
// analogous and monochrome.
//
// [core/canvas] - The mutable RGB or RGBA raster and its base styles.
//
// [core/shapes] - Random circles, squares, rectangles, polygons and lines
// composited with per-shape opacity.
//
// [core/effects] - Line splashes, noise blending and supersample smoothing.
//
// [core/overlay] - The rotated, translucent word overlay.
//
// ## Orchestration
//
// [pipeline] - Options, validation, stage sequencing with timings, and the
// caching [pipeline.Runner] shared by the CLI, the studio and the server.
//
// ## Infrastructure
//
// [cache] - Design cache backends: file (CLI default), Redis, null.
//
// [fonts] - TrueType loading with embedded and bitmap fallbacks.
//
// [errors] - Code-based structured errors.
//
// [observability] - Hook registry for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// # Determinism
//
// Every random choice comes from the streams of one seed, so identical seed
// and options yield byte-identical PNGs. This is what makes the cache and the
// seed-based file names meaningful.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/core
// [core/seed]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/core/seed
// [core/palette]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/core/palette
// [core/canvas]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/core/canvas
// [core/shapes]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/core/shapes
// [core/effects]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/core/effects
// [core/overlay]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/core/overlay
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/cache
// [fonts]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/fonts
// [errors]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/teeforge/pkg/buildinfo
package pkg
