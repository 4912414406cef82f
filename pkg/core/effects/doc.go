// Package effects holds the optional post-processing passes of the pipeline:
// line splashes, the noise blend and the antialiasing finisher.
//
// Every pass keeps the canvas dimensions, and none of them touches the alpha
// channel except [Smooth], which resamples all four channels.
package effects
