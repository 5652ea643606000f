package tracing

// EvalQuery is used to define the evaluation entries to be queried. Not all
// the fields have to be set. If a field is empty, the criteria is ignored.
type EvalQuery struct {
	// Use Unit to select the evaluations gating one unit.
	Unit string

	// Use Condition to select the evaluations of one condition.
	Condition string

	// Use Kind to select the evaluations of one condition kind.
	Kind string

	// Enable tick range selection.
	EnableTickRange bool

	// Use StartSeq and EndSeq to select a closed tick range.
	StartSeq, EndSeq uint64

	// Limit caps the number of entries returned. 0 means no limit.
	Limit int

	// Offset is the number of entries to skip (pagination).
	Offset int
}

// DecisionQuery is used to define the unit decisions to be queried. Empty
// fields are ignored.
type DecisionQuery struct {
	// Use Unit to select the decisions of one unit.
	Unit string

	// Enable tick range selection.
	EnableTickRange bool

	// Use StartSeq and EndSeq to select a closed tick range.
	StartSeq, EndSeq uint64

	// Limit caps the number of entries returned. 0 means no limit.
	Limit int

	// Offset is the number of entries to skip (pagination).
	Offset int
}

// TraceReader can parse a recorded trace database.
type TraceReader interface {
	// ListUnits returns all the units present in the trace.
	ListUnits() []string

	// ListConditions returns all the condition names present in the trace.
	ListConditions() []string

	// ListEvals queries evaluation entries in tick order.
	ListEvals(query EvalQuery) []EvalEntry

	// ListDecisions queries unit decisions in tick order.
	ListDecisions(query DecisionQuery) []DecisionEntry

	// Close closes the reader.
	Close() error
}
