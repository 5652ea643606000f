package sched

import (
	"github.com/condlab/runcond/monitoring"
	"github.com/condlab/runcond/recording"
	"github.com/condlab/runcond/tracing"
)

// Builder can be used to build a scheduler.
type Builder struct {
	name             string
	monitorOn        bool
	monitorPort      int
	browserOnStart   bool
	outputFileName   string
	verdictRecording bool
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		name:      "Sched",
		monitorOn: true,
	}
}

// WithName sets the name of the scheduler.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithoutMonitoring sets the scheduler to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowserOnStart sets the monitor to open its page in a browser when
// the server starts.
func (b Builder) WithBrowserOnStart() Builder {
	b.browserOnStart = true
	return b
}

// WithVerdictRecording sets the scheduler to record every evaluation into
// a database.
func (b Builder) WithVerdictRecording() Builder {
	b.verdictRecording = true
	return b
}

// WithOutputFileName sets the custom output file name for the verdict
// database.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.browserOnStart {
		panic("browser cannot be opened when monitoring is disabled")
	}

	if b.outputFileName != "" && !b.verdictRecording {
		panic("output file name requires verdict recording")
	}
}

// Build builds the scheduler.
func (b Builder) Build() *Scheduler {
	b.parametersMustBeValid()

	s := NewScheduler(b.name)

	if b.verdictRecording {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "runcond_" + s.id
		}

		s.recorder = recording.NewDataRecorder(outputPath)
		s.verdictTracer = tracing.NewDBTracer(s.counter, s.recorder)
		tracing.CollectTrace(s.evaluator, s.verdictTracer)
	}

	if b.monitorOn {
		s.permitTracer = tracing.NewPermitRateTracer(nil)
		tracing.CollectTrace(s.evaluator, s.permitTracer)

		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		if b.browserOnStart {
			s.monitor.WithBrowserOnStart()
		}
		s.monitor.RegisterScheduler(s)
		s.monitor.RegisterPermitRateTracer(s.permitTracer)
		s.monitor.StartServer()
	}

	return s
}
