// Package reducer implements the group aggregation strategies consumed by
// the graph's Reduce operator: the Reducer interface itself, plus First,
// Count, Sum, TopN, and TermFrequency.
package reducer
