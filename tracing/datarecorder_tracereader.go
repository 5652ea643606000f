package tracing

import (
	"context"
	"database/sql"
	"strings"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/condlab/runcond/recording"
)

// DataRecorderTraceReader reads traces written by a DBTracer through the
// recording backend.
type DataRecorderTraceReader struct {
	*sql.DB

	reader recording.DataReader
}

// NewDataRecorderTraceReader opens a trace database file.
func NewDataRecorderTraceReader(filename string) *DataRecorderTraceReader {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	reader := recording.NewReaderWithDB(db)
	reader.MapTable("trace_evals", EvalEntry{})
	reader.MapTable("trace_decisions", DecisionEntry{})

	return &DataRecorderTraceReader{
		DB:     db,
		reader: reader,
	}
}

// ListUnits returns all the units present in the trace, sorted.
func (r *DataRecorderTraceReader) ListUnits() []string {
	return r.listDistinct("SELECT DISTINCT Unit FROM trace_decisions ORDER BY Unit")
}

// ListConditions returns all the condition names present in the trace,
// sorted.
func (r *DataRecorderTraceReader) ListConditions() []string {
	return r.listDistinct(
		"SELECT DISTINCT Condition FROM trace_evals ORDER BY Condition")
}

func (r *DataRecorderTraceReader) listDistinct(query string) []string {
	rows, err := r.Query(query)
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	var values []string

	for rows.Next() {
		var value string

		err := rows.Scan(&value)
		if err != nil {
			panic(err)
		}

		values = append(values, value)
	}

	return values
}

// ListEvals queries evaluation entries in tick order.
func (r *DataRecorderTraceReader) ListEvals(query EvalQuery) []EvalEntry {
	var where []string
	var args []any

	if query.Unit != "" {
		where = append(where, "Unit = ?")
		args = append(args, query.Unit)
	}

	if query.Condition != "" {
		where = append(where, "Condition = ?")
		args = append(args, query.Condition)
	}

	if query.Kind != "" {
		where = append(where, "Kind = ?")
		args = append(args, query.Kind)
	}

	if query.EnableTickRange {
		where = append(where, "TickSeq >= ?", "TickSeq <= ?")
		args = append(args, query.StartSeq, query.EndSeq)
	}

	params := recording.QueryParams{
		Where:   strings.Join(where, " AND "),
		Args:    args,
		OrderBy: "TickSeq ASC",
		Limit:   query.Limit,
		Offset:  query.Offset,
	}

	results, _, err := r.reader.Query(
		context.Background(), "trace_evals", params)
	if err != nil {
		panic(err)
	}

	entries := make([]EvalEntry, 0, len(results))
	for _, res := range results {
		entries = append(entries, *res.(*EvalEntry))
	}

	return entries
}

// ListDecisions queries unit decisions in tick order.
func (r *DataRecorderTraceReader) ListDecisions(
	query DecisionQuery,
) []DecisionEntry {
	var where []string
	var args []any

	if query.Unit != "" {
		where = append(where, "Unit = ?")
		args = append(args, query.Unit)
	}

	if query.EnableTickRange {
		where = append(where, "TickSeq >= ?", "TickSeq <= ?")
		args = append(args, query.StartSeq, query.EndSeq)
	}

	params := recording.QueryParams{
		Where:   strings.Join(where, " AND "),
		Args:    args,
		OrderBy: "TickSeq ASC",
		Limit:   query.Limit,
		Offset:  query.Offset,
	}

	results, _, err := r.reader.Query(
		context.Background(), "trace_decisions", params)
	if err != nil {
		panic(err)
	}

	entries := make([]DecisionEntry, 0, len(results))
	for _, res := range results {
		entries = append(entries, *res.(*DecisionEntry))
	}

	return entries
}

// Close closes the reader.
func (r *DataRecorderTraceReader) Close() error {
	return r.reader.Close()
}
