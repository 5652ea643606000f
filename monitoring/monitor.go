package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/condlab/runcond/gate"
	"github.com/condlab/runcond/monitoring/web"
	"github.com/condlab/runcond/tracing"
)

// SchedulerInfo is the view of a scheduler that the monitor serves. A
// scheduler registers itself and the monitor reads units, conditions, and
// verdicts through this interface.
type SchedulerInfo interface {
	Name() string
	UnitNames() []string
	UnitKind(name string) string
	Registry() *gate.Registry
	CurrentTick() gate.Tick
}

// Monitor can turn a condition-gated scheduler into a server and allows
// external monitoring of its units, conditions, and verdicts.
type Monitor struct {
	scheduler        SchedulerInfo
	permitRateTracer *tracing.PermitRateTracer
	portNumber       int
	browserOnStart   bool
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowserOnStart opens the monitoring page in the default browser when
// the server starts.
func (m *Monitor) WithBrowserOnStart() *Monitor {
	m.browserOnStart = true
	return m
}

// RegisterScheduler registers the scheduler to be monitored.
func (m *Monitor) RegisterScheduler(s SchedulerInfo) {
	m.scheduler = s
}

// RegisterPermitRateTracer registers the tracer that serves permit rate
// statistics.
func (m *Monitor) RegisterPermitRateTracer(t *tracing.PermitRateTracer) {
	m.permitRateTracer = t
}

// StartServer starts the monitor as a web server with a custom port if
// available.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/units", m.listUnits)
	r.HandleFunc("/api/unit/{name}", m.listUnitDetails)
	r.HandleFunc("/api/conditions", m.listConditions)
	r.HandleFunc("/api/condition/{json}", m.listConditionDetails)
	r.HandleFunc("/api/permitrates", m.listPermitRates)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	port := listener.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(
		os.Stderr,
		"Monitoring scheduler %s with http://localhost:%d\n",
		m.scheduler.Name(), port,
	)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()

	if m.browserOnStart {
		err := browser.OpenURL(fmt.Sprintf("http://localhost:%d", port))
		dieOnErr(err)
	}
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	tick := m.scheduler.CurrentTick()
	fmt.Fprintf(w, "{\"seq\":%d,\"now\":%.10f}", tick.Seq, tick.Now)
}

func (m *Monitor) listUnits(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, name := range m.scheduler.UnitNames() {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "\"%s\"", name)
	}
	fmt.Fprint(w, "]")
}

type unitRsp struct {
	Name       string         `json:"name"`
	Kind       string         `json:"kind"`
	Conditions []conditionRsp `json:"conditions"`
}

type conditionRsp struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	RefCount    int    `json:"ref_count"`
	LastVerdict string `json:"last_verdict,omitempty"`
	LastTickSeq uint64 `json:"last_tick_seq,omitempty"`
}

func (m *Monitor) listUnitDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if !m.unitExistsOr404(w, name) {
		return
	}

	registry := m.scheduler.Registry()
	rsp := unitRsp{
		Name: name,
		Kind: m.scheduler.UnitKind(name),
	}

	for _, c := range registry.ConditionsOf(name) {
		cRsp := conditionRsp{
			Name:     c.Name(),
			Kind:     gate.KindOf(c),
			RefCount: registry.RefCount(c),
		}

		if verdict, seq, ok := registry.LastVerdict(c); ok {
			cRsp.LastVerdict = verdict.String()
			cRsp.LastTickSeq = seq
		}

		rsp.Conditions = append(rsp.Conditions, cRsp)
	}

	rspBytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(rspBytes)
	dieOnErr(err)
}

func (m *Monitor) unitExistsOr404(w http.ResponseWriter, name string) bool {
	for _, n := range m.scheduler.UnitNames() {
		if n == name {
			return true
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Unit not found"))
	dieOnErr(err)

	return false
}

func (m *Monitor) listConditions(w http.ResponseWriter, r *http.Request) {
	sortMethod, limit, offset, err := m.conditionsParseParams(r)
	if err != nil {
		w.WriteHeader(400)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	conditions := m.sortAndSelectConditions(sortMethod, limit, offset)
	registry := m.scheduler.Registry()

	fmt.Fprint(w, "[")
	for i, c := range conditions {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w,
			"{\"condition\":\"%s\",\"kind\":\"%s\",\"refcount\":%d}",
			c.Name(), gate.KindOf(c), registry.RefCount(c))
	}
	fmt.Fprint(w, "]")
}

func (*Monitor) conditionsParseParams(
	r *http.Request,
) (sortMethod string, limit, offset int, err error) {
	sortMethod = r.URL.Query().Get("sort")
	if sortMethod == "" {
		sortMethod = "refcount"
	}

	if sortMethod != "refcount" && sortMethod != "name" {
		errStr := fmt.Sprintf(
			"Invalid sort method: %s. Allowed values are `refcount` and `name`.",
			sortMethod)
		return "", 0, 0, errors.New(errStr)
	}

	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "0"
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil {
		return "", 0, 0, err
	}

	offsetStr := r.URL.Query().Get("offset")
	if offsetStr == "" {
		offsetStr = "0"
	}

	offset, err = strconv.Atoi(offsetStr)
	if err != nil {
		return "", 0, 0, err
	}

	return sortMethod, limit, offset, nil
}

func (m *Monitor) sortAndSelectConditions(
	sortMethod string,
	limit, offset int,
) []gate.Condition {
	registry := m.scheduler.Registry()

	// Registry.Conditions is sorted by name already.
	sorted := registry.Conditions()
	if sortMethod == "refcount" {
		sort.SliceStable(sorted, func(i, j int) bool {
			return registry.RefCount(sorted[i]) > registry.RefCount(sorted[j])
		})
	}

	if offset > len(sorted) {
		offset = len(sorted)
	}

	end := len(sorted)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return sorted[offset:end]
}

type conditionReq struct {
	ConditionName string `json:"condition_name,omitempty"`
	FieldName     string `json:"field_name,omitempty"`
}

func (m *Monitor) listConditionDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	req := conditionReq{}

	err := json.Unmarshal([]byte(vars["json"]), &req)
	dieOnErr(err)

	condition := m.findConditionOr404(w, req.ConditionName)
	if condition == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(condition)
	serializer.SetMaxDepth(1)

	if req.FieldName != "" {
		fields := strings.Split(req.FieldName, ".")
		err := serializer.SetEntryPoint(fields)
		dieOnErr(err)
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) findConditionOr404(
	w http.ResponseWriter,
	name string,
) gate.Condition {
	var condition gate.Condition

	for _, c := range m.scheduler.Registry().Conditions() {
		if c.Name() == name {
			condition = c
		}
	}

	if condition == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Condition not found"))
		dieOnErr(err)
	}

	return condition
}

func (m *Monitor) listPermitRates(w http.ResponseWriter, _ *http.Request) {
	if m.permitRateTracer == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Permit rate tracer not attached"))
		dieOnErr(err)
		return
	}

	rspBytes, err := json.Marshal(m.permitRateTracer.Snapshot())
	dieOnErr(err)

	_, err = w.Write(rspBytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}

	rspBytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(rspBytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.Buffer{}

	err := pprof.StartCPUProfile(&buf)
	dieOnErr(err)

	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	rspBytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(rspBytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
