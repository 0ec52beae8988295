// Package partition chooses where a sequence of photos breaks into rows.
//
// # The Partition Problem
//
// Given n aspect ratios in a fixed order, a partition splits them into
// contiguous, non-empty rows. Every row is justified to the container width
// (see package geometry), so each choice of break points fixes every row
// height. An objective scores each row by its height, and the partition
// with the lowest aggregate score wins.
//
// This package provides two searchers behind one [Searcher] interface:
//
//   - [Dynamic]: exact dynamic programming, O(n²) time and O(n) space
//   - [Exhaustive]: enumerates all 2^(n-1) partitions; a reference oracle
//
// # Aggregation
//
// Row costs are combined by [Mean] unless configured otherwise. Summing
// makes the aggregate grow with the number of rows regardless of how good
// each row is, which biases the search toward fewer, larger rows. [Sum] is
// still available because the oracle's reference configuration uses it,
// and under Sum the dynamic program is exactly optimal.
//
// Under Mean the dynamic program keeps, for each prefix, only the best mean
// and its row count. That is not a complete summary of the prefix, so the
// result can occasionally be beaten by a partition the program discarded.
// Comparisons against the oracle must therefore pin both searchers to the
// same aggregation and expect exact agreement only under Sum.
//
// # Dynamic Programming
//
// For each right boundary i, every candidate previous boundary p (or none,
// for a first row) is scored by extending the best partition of 0..p with
// the row p+1..i. Candidates whose row is geometrically invalid are
// skipped. The strictly smallest cost wins, and ties keep the earliest
// candidate examined, so fewer, earlier-ending rows are preferred when
// costs tie exactly. The winning partition is recovered by walking the
// recorded boundaries backward from the last item.
//
// # Usage
//
//	obj := objective.SquaredError(objective.DefaultIdealHeight)
//	p, err := partition.Dynamic{}.Search(ratios, 0.01, obj)
//
// Cross-check on small inputs:
//
//	want, err := partition.Oracle().Search(ratios, 0.01, obj)
//	got, err := partition.Dynamic{Aggregation: partition.Sum}.Search(ratios, 0.01, obj)
package partition
