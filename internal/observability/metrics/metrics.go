package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "assemblyline_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	stageSubmitTotal   *prometheus.CounterVec
	stageSubmitLatency *prometheus.HistogramVec

	stageVerifyTotal   *prometheus.CounterVec
	gateViolationTotal *prometheus.CounterVec

	firmwareSerialTotal    *prometheus.CounterVec
	firmwareSerialFallback prometheus.Counter

	qcChecksTotal *prometheus.CounterVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		stageSubmitTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "stage_submit_total",
				Help: "Total stage submissions by stage and result",
			},
			[]string{"stage", "result"},
		)
		stageSubmitLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "stage_submit_latency_seconds",
				Help:    "Stage submission latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage", "result"},
		)

		stageVerifyTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "stage_verify_total",
				Help: "Total stage verifications by stage and result",
			},
			[]string{"stage", "result"},
		)
		gateViolationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "gate_violation_total",
				Help: "Total gate violations detected by stage",
			},
			[]string{"stage"},
		)

		firmwareSerialTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "firmware_serial_total",
				Help: "Total firmware serial allocations by source",
			},
			[]string{"source"},
		)
		firmwareSerialFallback = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "firmware_serial_fallback_total",
				Help: "Total firmware serial allocations served from a local session counter",
			},
		)

		qcChecksTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "qc_checks_total",
				Help: "Total quality checks by verdict",
			},
			[]string{"verdict"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			stageSubmitTotal,
			stageSubmitLatency,
			stageVerifyTotal,
			gateViolationTotal,
			firmwareSerialTotal,
			firmwareSerialFallback,
			qcChecksTotal,
			reportExportTotal,
			reportExportLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveStageSubmit records a stage submission duration and result.
func ObserveStageSubmit(stage, result string, duration time.Duration) {
	if stage == "" {
		stage = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if stageSubmitTotal != nil {
		stageSubmitTotal.WithLabelValues(stage, result).Inc()
	}
	if stageSubmitLatency != nil {
		stageSubmitLatency.WithLabelValues(stage, result).Observe(duration.Seconds())
	}
}

// IncStageVerify increments the verification counter for a stage.
func IncStageVerify(stage, result string) {
	if stage == "" {
		stage = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if stageVerifyTotal != nil {
		stageVerifyTotal.WithLabelValues(stage, result).Inc()
	}
}

// IncGateViolation increments the gate violation counter for a stage.
func IncGateViolation(stage string) {
	if stage == "" {
		stage = "unknown"
	}
	if gateViolationTotal != nil {
		gateViolationTotal.WithLabelValues(stage).Inc()
	}
}

// IncFirmwareSerial counts a serial allocation by its source.
func IncFirmwareSerial(source string) {
	if source == "" {
		source = "unknown"
	}
	if firmwareSerialTotal != nil {
		firmwareSerialTotal.WithLabelValues(source).Inc()
	}
	if source == SerialSourceSession && firmwareSerialFallback != nil {
		firmwareSerialFallback.Inc()
	}
}

// IncQualityCheck increments the QC counter by verdict.
func IncQualityCheck(pass bool) {
	verdict := "fail"
	if pass {
		verdict = "pass"
	}
	if qcChecksTotal != nil {
		qcChecksTotal.WithLabelValues(verdict).Inc()
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	SerialSourceServer  = "server"
	SerialSourceSession = "session"
)
