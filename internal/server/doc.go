// Package server exposes the design generator over HTTP.
//
// Routes:
//
//	GET /            form page; with query parameters it also shows the
//	                 resolved seed, a preview and a download link
//	GET /api/seed    resolve seed text without generating
//	GET /generate    render and return the PNG
//	GET /healthz     liveness and build version
//
// Every route takes the same query parameters as the CLI generate flags:
// seed, width, height, transparent, palette, style, layers, text, lines,
// noise and antialias. Invalid input returns 400 with a JSON body carrying
// the error code.
package server
