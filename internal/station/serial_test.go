package station

import (
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, time.January, 6, 9, 30, 0, 0, time.UTC)
}

func testCounter() *SerialCounter {
	counter := NewSerialCounter(Config{
		BatchPrefix:  "TIA/BATCH",
		LotPrefix:    "TIA/LOT",
		SerialPrefix: "TIA",
	})
	counter.now = fixedClock
	return counter
}

func TestNextBatchLot(t *testing.T) {
	counter := testCounter()
	batchNo, lotNo := counter.NextBatchLot()
	if batchNo != "TIA/BATCH/06012026/VLT000001" {
		t.Fatalf("batch = %q", batchNo)
	}
	if lotNo != "TIA/LOT/06012026/VLT000001" {
		t.Fatalf("lot = %q", lotNo)
	}
	batchNo, _ = counter.NextBatchLot()
	if batchNo != "TIA/BATCH/06012026/VLT000002" {
		t.Fatalf("second batch = %q", batchNo)
	}
}

func TestNextFallbackSerial(t *testing.T) {
	counter := testCounter()
	if got := counter.NextFallbackSerial(); got != "TIA/06012026A8001" {
		t.Fatalf("serial = %q", got)
	}
	if got := counter.NextFallbackSerial(); got != "TIA/06012026A8002" {
		t.Fatalf("second serial = %q", got)
	}
}
