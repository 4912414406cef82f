// Package canvas owns the pixel buffer of a design and builds its base fill.
//
// # Canvas
//
// A [Canvas] wraps a non-premultiplied [image.NRGBA] and remembers whether the
// design has three channels (RGB) or four (RGBA). RGB canvases keep alpha at
// 255 everywhere. Stages mutate the buffer in place or hand back a new one
// through [Canvas.Replace], which refuses any change of dimensions.
//
// # Base styles
//
// [Base] fills a fresh canvas with one of the [Style] values:
//
//   - [Solid]: opaque white, or fully transparent when requested
//   - [VerticalStripes]: alternating stripes of two random colors
//   - [RadialGradient]: two random colors blended by distance from center
//   - [LinearGradient]: two random colors blended left to right
//   - [Noise]: per-pixel random color smoothed by a Gaussian blur
//
// Every style other than [Solid] forces alpha to 255, even on a transparent
// canvas. Transparency only shows through where nothing was filled.
package canvas
