package tracing

import (
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/condlab/runcond/gate"
)

// CSVTracerBackend is a tracer that stores evaluation records in a CSV
// file.
type CSVTracerBackend struct {
	path string
	file *os.File

	records    []gate.EvalRecord
	bufferSize int
}

// NewCSVTracerBackend creates a new CSVTracerBackend. Init must be called
// before use.
func NewCSVTracerBackend(path string) *CSVTracerBackend {
	return &CSVTracerBackend{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing csv file. An empty path picks a unique
// generated filename. Buffered records are flushed at process exit.
func (t *CSVTracerBackend) Init() {
	if t.path == "" {
		t.path = "runcond_trace_" + xid.New().String()
	}

	filename := t.path + ".csv"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file,
		"ID, Unit, Condition, Kind, TickSeq, Now, Verdict, Memoized, Err\n")

	atexit.Register(func() {
		t.Flush()

		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// RecordEval buffers one evaluation record.
func (t *CSVTracerBackend) RecordEval(rec gate.EvalRecord) {
	t.records = append(t.records, rec)
	if len(t.records) >= t.bufferSize {
		t.Flush()
	}
}

// UnitDecided does nothing. The CSV format carries evaluations only.
func (t *CSVTracerBackend) UnitDecided(_ gate.UnitDecision) {
	// Do nothing.
}

// Flush writes the buffered records to the CSV file.
func (t *CSVTracerBackend) Flush() {
	for _, rec := range t.records {
		fmt.Fprintf(t.file, "%s, %s, %s, %s, %d, %.10f, %s, %t, %s\n",
			rec.ID,
			rec.Unit,
			rec.Condition.Name(),
			gate.KindOf(rec.Condition),
			rec.Tick.Seq,
			rec.Tick.Now,
			rec.Verdict,
			rec.Memoized,
			errString(rec.Err),
		)
	}

	t.records = nil
}
