package station

import (
	"context"
	"errors"
	"time"

	firmware "assemblyline-cloud/internal/firmware/domain"
	qc "assemblyline-cloud/internal/qc/domain"
	reportsinterfaces "assemblyline-cloud/internal/reports/interfaces"
	"assemblyline-cloud/internal/workflow"
)

// fwVersionKey is the one local-only checkpoint: the firmware-version
// consistency check is visual and never leaves the station, so the
// 17-point checklist maps to a 16-field payload.
const fwVersionKey = "fwVersionMatch"

// ReportSink receives the PDF generated as a side effect of a successful
// QC submission.
type ReportSink interface {
	SaveQCReport(imeiNo string, pdf []byte) error
}

// QCStation runs the terminal quality check. A firmware record is locked
// once its firmWareStatus flag is true; submission requires all 17 local
// points, posts the 16 wire fields, and renders the unit's PDF report on
// success before the accordion closes.
type QCStation struct {
	client   *Client
	session  *Session
	notifier Notifier
	sink     ReportSink
	empName  string

	records []firmware.Record
}

// NewQCStation constructs the station. The sink may be nil, in which case
// the PDF side effect is skipped.
func NewQCStation(client *Client, empName string, sink ReportSink, notifier Notifier) (*QCStation, error) {
	if client == nil {
		return nil, errors.New("station: nil client")
	}
	session, err := NewSession(workflow.StageQC, qcChecklistItems())
	if err != nil {
		return nil, err
	}
	return &QCStation{
		client:   client,
		session:  session,
		notifier: notifier,
		sink:     sink,
		empName:  empName,
	}, nil
}

func qcChecklistItems() []workflow.ChecklistItem {
	items := make([]workflow.ChecklistItem, 0, len(qc.PointKeys)+1)
	for _, key := range qc.PointKeys {
		items = append(items, workflow.ChecklistItem{Key: key, Label: key})
	}
	return append(items, workflow.ChecklistItem{Key: fwVersionKey, Label: "Firmware version matches sticker"})
}

// WorkTitle returns the assignment title this station serves.
func (s *QCStation) WorkTitle() string {
	return "QC check"
}

// Session exposes the state machine.
func (s *QCStation) Session() *Session {
	return s.session
}

// Refresh re-fetches the firmware worklist and locks units the server
// already reports as checked.
func (s *QCStation) Refresh(ctx context.Context) error {
	records, err := s.client.FetchFirmwareDetails(ctx)
	if err != nil {
		s.notify(err)
		return err
	}
	s.records = records
	for _, record := range records {
		if record.FirmwareStatus {
			s.session.Complete(record.IMEINo)
		}
	}
	return nil
}

// Records returns the fetched worklist filtered by the live IMEI filter.
func (s *QCStation) Records() []firmware.Record {
	var out []firmware.Record
	for _, record := range s.records {
		if s.session.MatchesFilter(record.IMEINo) {
			out = append(out, record)
		}
	}
	return out
}

// SetFilter applies the numeric-only IMEI list filter.
func (s *QCStation) SetFilter(input string) {
	s.session.SetFilter(input)
}

// StatusOf classifies one unit for this stage. A firmware record's
// existence is itself the gate; there is no separate verify action here.
func (s *QCStation) StatusOf(record firmware.Record) workflow.Status {
	return s.session.StatusOf(record.IMEINo, true, true, record.FirmwareStatus)
}

// Open focuses a unit's checklist when it is not yet locked.
func (s *QCStation) Open(record firmware.Record) bool {
	if !s.StatusOf(record).Editable() {
		return false
	}
	return s.session.Open(record.IMEINo)
}

// Submit posts the QC checklist for the open unit. All 17 local points must
// be ticked; only the 16 wire fields are sent. On success the record locks,
// the PDF report is rendered as a side effect and the accordion closes.
func (s *QCStation) Submit(ctx context.Context) error {
	if s.empName == "" {
		err := qc.ErrMissingEmpName
		s.notify(err)
		return err
	}
	if !s.session.BeginSubmit() {
		err := workflow.ErrChecklistIncomplete
		s.notify(err)
		return err
	}
	focused := s.session.Focused()
	values := s.session.Values()
	points := make(map[string]bool, len(qc.PointKeys))
	for _, key := range qc.PointKeys {
		points[key] = values[key]
	}
	report, err := s.client.SubmitQualityCheck(ctx, focused, s.empName, points)
	s.session.EndSubmit(err == nil)
	if err != nil {
		s.notify(err)
		return err
	}
	if s.sink != nil && report != nil {
		day := report.CreatedAt.UTC().Truncate(24 * time.Hour)
		pdf, renderErr := reportsinterfaces.BuildQCReportPDF(day, []qc.Record{*report})
		if renderErr != nil {
			s.notify(renderErr)
		} else if saveErr := s.sink.SaveQCReport(report.IMEINo, pdf); saveErr != nil {
			s.notify(saveErr)
		}
	}
	if s.notifier != nil {
		s.notifier.Success("Quality check submitted successfully")
	}
	return nil
}

func (s *QCStation) notify(err error) {
	if s.notifier != nil && err != nil {
		s.notifier.Error(err.Error())
	}
}
