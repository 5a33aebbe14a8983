package monitor

import (
	"math"
	"net/http"
	"time"

	"github.com/forestledger/backend/src/utils/monitor/report"
	"github.com/forestledger/backend/src/utils/task"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report report.Report

	historySize int

	collector *Collector

	// Rolling windows for per minute rates
	RequestCounts     *deque.Deque[uint64]
	SubmitErrorCounts *deque.Deque[int64]
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = *report.NewReport()

	// Initialization
	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorRequests).
		WithPeriodicSubtaskFunc(time.Minute, self.monitorSubmitErrors)
	return
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize

	self.RequestCounts = deque.New[uint64](self.historySize)
	self.SubmitErrorCounts = deque.New[int64](self.historySize)

	return self
}

func (self *Monitor) Clear() {
	self.RequestCounts.Clear()
	self.SubmitErrorCounts.Clear()
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Measure how fast certificate requests come in
func (self *Monitor) monitorRequests() (err error) {
	loaded := self.Report.Requests.State.RequestsCreated.Load()

	self.RequestCounts.PushBack(loaded)
	if self.RequestCounts.Len() > self.historySize {
		self.RequestCounts.PopFront()
	}
	value := float64(self.RequestCounts.Back()-self.RequestCounts.Front()) / float64(self.RequestCounts.Len())
	self.Report.Requests.State.AverageRequestsPerMinute.Store(round(value))
	return
}

// Measure how fast ledger submissions fail
func (self *Monitor) monitorSubmitErrors() (err error) {
	loaded := self.Report.Ledger.Errors.SubmitError.Load()

	self.SubmitErrorCounts.PushBack(loaded)
	if self.SubmitErrorCounts.Len() > self.historySize {
		self.SubmitErrorCounts.PopFront()
	}
	value := float64(self.SubmitErrorCounts.Back()-self.SubmitErrorCounts.Front()) / float64(self.SubmitErrorCounts.Len())
	self.Report.Ledger.State.AverageSubmitErrorsPerMinute.Store(round(value))
	return
}

func (self *Monitor) IsOK() bool {
	now := time.Now().Unix()
	if now-self.Report.Run.State.StartTimestamp.Load() < 300 {
		return true
	}

	// The gateway is request driven, being idle is fine. A steady stream of
	// failed ledger submissions is not.
	return self.Report.Ledger.State.AverageSubmitErrorsPerMinute.Load() < 1
}

func (self *Monitor) OnGetState(c *gin.Context) {
	// Fill data
	self.Report.Run.State.UpForSeconds.Store(uint64(time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()))

	c.JSON(http.StatusOK, &self.Report)
}

func (self *Monitor) OnGetHealth(c *gin.Context) {
	if self.IsOK() {
		c.Status(http.StatusOK)
	} else {
		c.Status(http.StatusServiceUnavailable)
	}
}
