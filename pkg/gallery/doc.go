// Package gallery reads the aspect ratios of a photo gallery from a
// manifest file.
//
// Three formats are supported, chosen by file extension:
//
//   - JSON (.json): {"name": "...", "items": [{"id": "a", "aspect_ratio": 1.5}]}
//     or a bare array of ratios such as [1.5, 0.75, 1]
//   - TOML (.toml): [[items]] tables with the same keys
//   - Text (.txt, .list): one item per line, either a ratio ("1.5") or a
//     pixel size ("4000x3000"), optionally preceded by an ID; "#" starts a
//     comment
//
// Every item carries either aspect_ratio or both width and height.
// [Gallery.AspectRatios] validates the items and returns the ratios in
// manifest order, ready for [layout.Compute].
//
// Decoding image files to discover their dimensions is left to the caller.
package gallery
