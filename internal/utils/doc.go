// Package utils provides shared low-level helpers used throughout rowgraph's
// internals: a repairing string-to-T decoder used by the parser package, and
// a simple elapsed-time timer used by the externalsort package to time its
// observability spans.
//
// Key entry points: [ParseStringAs] for decoding strings (including malformed
// JSON, auto-repaired via jsonrepair) into an arbitrary type, and [Timer] for
// measuring latency.
package utils
