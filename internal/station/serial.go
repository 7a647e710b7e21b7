package station

import (
	"fmt"
	"sync"
	"time"

	"assemblyline-cloud/internal/observability/metrics"
)

// serialSeqBase matches the server's daily serial sequence base.
const serialSeqBase = 8000

// SerialCounter generates batch, lot and fallback serial numbers for one
// session. Counters live only in memory and reset with the session, so
// fallback serials are not collision-free across sessions; the server's
// getNextFirmwareSlNo stays authoritative whenever it is reachable.
type SerialCounter struct {
	mu           sync.Mutex
	batchPrefix  string
	lotPrefix    string
	serialPrefix string
	batchSeq     int64
	serialSeq    int64
	now          func() time.Time
}

// NewSerialCounter constructs a counter with the configured prefixes.
func NewSerialCounter(cfg Config) *SerialCounter {
	return &SerialCounter{
		batchPrefix:  cfg.BatchPrefix,
		lotPrefix:    cfg.LotPrefix,
		serialPrefix: cfg.SerialPrefix,
		now:          time.Now,
	}
}

// NextBatchLot returns the next batch and lot pair for the barcode form,
// e.g. TIA/BATCH/06012026/VLT000001 and TIA/LOT/06012026/VLT000001.
func (c *SerialCounter) NextBatchLot() (batchNo, lotNo string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batchSeq++
	day := c.now().Format("02012006")
	code := fmt.Sprintf("VLT%06d", c.batchSeq)
	return fmt.Sprintf("%s/%s/%s", c.batchPrefix, day, code),
		fmt.Sprintf("%s/%s/%s", c.lotPrefix, day, code)
}

// NextFallbackSerial generates a session-local firmware serial for when the
// next-serial endpoint is unreachable. Every use is counted so the fallback
// rate is visible.
func (c *SerialCounter) NextFallbackSerial() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serialSeq++
	metrics.IncFirmwareSerial(metrics.SerialSourceSession)
	return fmt.Sprintf("%s/%sA%d", c.serialPrefix, c.now().Format("02012006"), serialSeqBase+c.serialSeq)
}
