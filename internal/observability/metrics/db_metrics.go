package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "units_awaiting_soldering",
			Help: "Units with a verified barcode and no soldering record",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM barcode_units WHERE status_one AND NOT soldering_status")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "units_awaiting_qc",
			Help: "Firmware-complete units not yet quality checked",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM firmware_records f WHERE NOT f.firmware_status")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
