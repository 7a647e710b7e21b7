package station

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	firmware "assemblyline-cloud/internal/firmware/domain"
)

type failingSink struct {
	err error
}

func (s *failingSink) SaveQCReport(string, []byte) error { return s.err }

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func TestQCSubmitReportsSinkFailure(t *testing.T) {
	const imeiNo = "123456789012345"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"qcReport": map[string]any{
				"imeiNo":    imeiNo,
				"empName":   "operator",
				"pass":      true,
				"createdAt": time.Date(2026, time.January, 6, 10, 0, 0, 0, time.UTC),
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "token")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	notifier := &recordingNotifier{}
	sink := &failingSink{err: errors.New("report store unavailable")}
	qcStation, err := NewQCStation(client, "operator", sink, notifier)
	if err != nil {
		t.Fatalf("qc station: %v", err)
	}

	if !qcStation.Open(firmware.Record{IMEINo: imeiNo}) {
		t.Fatalf("open refused")
	}
	qcStation.Session().ToggleAll()
	if err := qcStation.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(notifier.errors) != 1 || notifier.errors[0] != "report store unavailable" {
		t.Fatalf("sink failure not reported: %+v", notifier.errors)
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("submit success notification missing: %+v", notifier.successes)
	}
}
