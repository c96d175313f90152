// Package render produces the raster output of the pipeline: cell
// fragments cropped to cell geometry, the assembled 2520×2520 composite
// canvas, and the final PNG bytes with print density metadata.
//
// Rendering is split so each step is testable on its own:
//
//   - Cell: fill-crop one photo to an exact cell size
//   - Composite: place fragments on the transparent canvas
//   - Enhance: optional sharpen and saturation pass
//   - Backgrounds: optional harmonized pads for short batches
//   - EncodePNG: PNG encoding with a pHYs density chunk
package render
