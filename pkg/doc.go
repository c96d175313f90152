// Package pkg provides the core libraries for Photomatrix composite generation.
//
// # Overview
//
// Photomatrix composes directories of photos into print-ready 3×3 grid
// composites. The pkg directory is organized into these areas:
//
//  1. [photo] - Input handling (decoding, validation, aspect classification)
//  2. [grid] - Grid geometry (layouts, slot assignment, batch planning)
//  3. [render] - Raster output (cell crops, compositing, PNG encoding)
//  4. [pipeline] - Orchestration (scan → plan → render)
//  5. [cache] - Content-addressed composite caching
//
// # Architecture
//
// The typical data flow through Photomatrix:
//
//	Photo Directory
//	         ↓
//	photo.Scan / photo.Load     (decode, validate, classify)
//	         ↓
//	grid.Plan / grid.SelectLayout  (batches of ≤9, one layout each)
//	         ↓
//	render.Cell / render.Composite (fill-crop cells, paint canvas)
//	         ↓
//	render.EncodePNG            (2520×2520 PNG at 200 dpi)
//
// The pipeline package ties the stages together and adds caching; the
// errors, observability, and buildinfo packages provide the ambient
// support used across CLI and API entry points.
package pkg
