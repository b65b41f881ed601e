package parser

import (
	"github.com/rowgraph/rowgraph/internal/utils"
	"github.com/rowgraph/rowgraph/row"
)

// JSONLine decodes a line as a single JSON object, repairing malformed JSON
// via jsonrepair before giving up (see internal/utils.ParseStringAs). Most
// job inputs in spec.md's examples (word counts, clickstream logs, map
// points) are one JSON object per line.
func JSONLine(line string) (row.Row, error) {
	return utils.ParseStringAs[row.Row](line)
}
