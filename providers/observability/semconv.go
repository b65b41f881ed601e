package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- Graph Attributes ---

const (
	// AttrNodeName is a node's name: the input name or file path of a source
	// node, or "map", "reduce", "sort" or "join" for the other nodes.
	AttrNodeName = "graph.node.name"

	// AttrNodeKind is the Go type of a node's operator (e.g. "graph.mapOp").
	AttrNodeKind = "graph.node.kind"

	// AttrNodeDepth is the node's distance from the furthest source in its DAG.
	AttrNodeDepth = "graph.node.depth"
)

// --- Row Stream Attributes ---

const (
	// AttrRowCount is the number of rows that passed through an operator.
	AttrRowCount = "rowstream.row_count"

	// AttrGroupKeys is the serialized key column list a reduce grouped on.
	AttrGroupKeys = "rowstream.group_keys"

	// AttrGroupCount is the number of distinct key groups an operator produced or consumed.
	AttrGroupCount = "rowstream.group_count"
)

// --- External Sort Attributes ---

const (
	// AttrSortKeys is the serialized key column list a sort ordered by.
	AttrSortKeys = "externalsort.keys"

	// AttrSortInProcess reports whether a sort ran in-process instead of via a subprocess.
	AttrSortInProcess = "externalsort.in_process"

	// AttrSortIngested is the row count the sort helper received.
	AttrSortIngested = "externalsort.ingested"

	// AttrSortEmitted is the row count the sort helper returned.
	AttrSortEmitted = "externalsort.emitted"
)

// --- Join Attributes ---

const (
	// AttrJoinerKind is the Go type of the join strategy (e.g. "joiner.Inner").
	AttrJoinerKind = "join.kind"
)

// --- General Attributes ---

const (
	// AttrError is the error message.
	AttrError = "error"

	// AttrErrorType is the error type/class.
	AttrErrorType = "error.type"

	// AttrDuration is the operation duration.
	AttrDuration = "duration"

	// AttrStatus is the operation status.
	AttrStatus = "status"

	// AttrStatusDescription is the free-form description attached to a span status.
	AttrStatusDescription = "status.description"
)

// --- Span Names ---

const (
	// SpanGraphRun is the span name for a full graph.Run call.
	SpanGraphRun = "graph.run"

	// SpanNodeMaterialize is the span name for a single node's materialize call.
	SpanNodeMaterialize = "graph.node.materialize"

	// SpanExternalSort is the span name for an external sort operation.
	SpanExternalSort = "externalsort.sort"
)

// --- Event Names ---

const (
	// EventNodeMaterializeStart marks the start of a node's materialization.
	EventNodeMaterializeStart = "graph.node.materialize.start"

	// EventNodeMaterializeEnd marks the end of a node's materialization.
	EventNodeMaterializeEnd = "graph.node.materialize.end"

	// EventSortHelperSpawned marks that the external sort subprocess was started.
	EventSortHelperSpawned = "externalsort.helper.spawned"
)
