// Package styles defines visual styles for bracket charts.
//
// # Overview
//
//   - [Style]: the interface every style implements
//   - [Simple]: light boxes with blue accents and bare round labels
//   - [Classic]: outlined boxes, shaded winner rows and boxed round headers
//
// A style only decides appearance. Positions and sizes arrive precomputed in
// [Box], [Edge] and [Header] values built by package chart, so two styles
// never disagree on where something is.
//
//	svg := sink.RenderSVG(scene, sink.WithStyle(styles.Classic{}))
//
// Use [Lookup] to resolve a style from a user-supplied name.
package styles
