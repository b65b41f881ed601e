// Package joiner implements the Inner/Outer/Left/Right join strategies
// consumed by the graph's sort-merge Join operator, including the
// _join_two_rows row-composition rule (overlapping non-key columns are
// suffixed rather than dropped or overwritten).
package joiner
