// Package seed resolves user supplied seed text and owns the random streams
// consumed by the design pipeline.
//
// # Resolution
//
// [Resolve] never fails. Text that parses as a base-10 integer is used
// directly (reduced modulo 2^32), any other non-empty text is hashed, and
// empty text draws a random seed:
//
//	s, src := seed.Resolve("42")      // 42, SourceInteger
//	s, src = seed.Resolve("summer")   // xxhash("summer") mod 2^32, SourceHash
//	s, src = seed.Resolve("")         // random, SourceRandom
//
// # Streams
//
// A design consumes two independent streams: a general-purpose stream for
// scalar choices (colors, shape kinds, positions) and an array stream for
// per-pixel noise fields. [Seed.Streams] builds both from the seed, so two
// calls with the same seed replay the same sequence. Streams are values owned
// by one pipeline invocation; nothing in this package keeps global state.
package seed
