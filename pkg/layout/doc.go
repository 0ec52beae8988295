// Package layout turns a sequence of aspect ratios into a justified grid.
//
// # Overview
//
// [Compute] is the entry point. It validates its inputs, asks a
// [partition.Searcher] for the best row breaks and hands the winning
// partition to [Build], which produces a [Result]:
//
//   - Rows: item ranges with their common height and cost
//   - Widths: the rendered width of every item, in original order
//
// All lengths are fractions of the container width. Converting them to
// pixels, placing margins and painting is the renderer's job.
//
// # Building a Layout
//
//	obj := objective.SquaredError(objective.DefaultIdealHeight)
//	res, err := layout.Compute(ratios, 0.01, obj)
//
// The default searcher is [partition.Dynamic] with mean aggregation. Use
// options to change it:
//
//	res, err := layout.Compute(ratios, 0.01, obj,
//	    layout.WithSearcher(partition.Oracle()),
//	)
//
// # Options
//
//   - [WithSearcher]: partition search strategy (default: [partition.Dynamic])
//   - [WithAggregation]: aggregation for the default searcher (default: mean)
//
// # Boxes
//
// [Result.Boxes] places every item in container coordinates, with one
// margin around and between items and between rows, for renderers that
// want absolute positions rather than widths.
//
// # Serialization
//
// [Marshal] and [WriteFile] produce the JSON form consumed by renderers and
// returned by the HTTP API.
package layout
