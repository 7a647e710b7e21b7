package station

import (
	"context"
	"errors"

	barcode "assemblyline-cloud/internal/barcode/domain"
	soldering "assemblyline-cloud/internal/soldering/domain"
	"assemblyline-cloud/internal/workflow"
)

// SolderingStation runs the 17-point soldering checklist. A unit becomes
// actionable only after its barcode record passed re-verification; the
// Verify & Start action unlocks one unit at a time.
type SolderingStation struct {
	client   *Client
	session  *Session
	notifier Notifier

	units []barcode.Record
}

// NewSolderingStation constructs the station with the 17-point checklist.
func NewSolderingStation(client *Client, notifier Notifier) (*SolderingStation, error) {
	if client == nil {
		return nil, errors.New("station: nil client")
	}
	session, err := NewSession(workflow.StageSoldering, solderingChecklistItems())
	if err != nil {
		return nil, err
	}
	return &SolderingStation{client: client, session: session, notifier: notifier}, nil
}

func solderingChecklistItems() []workflow.ChecklistItem {
	items := make([]workflow.ChecklistItem, 0, len(soldering.PointKeys))
	for _, key := range soldering.PointKeys {
		items = append(items, workflow.ChecklistItem{Key: key, Label: soldering.PointLabels[key]})
	}
	return items
}

// WorkTitle returns the assignment title this station serves.
func (s *SolderingStation) WorkTitle() string {
	return "Soldering"
}

// Session exposes the checklist state machine.
func (s *SolderingStation) Session() *Session {
	return s.session
}

// Refresh re-fetches the unit list and locks units the server already
// reports as soldered.
func (s *SolderingStation) Refresh(ctx context.Context) error {
	units, err := s.client.FetchBarcodes(ctx)
	if err != nil {
		s.notify(err)
		return err
	}
	s.units = units
	for _, unit := range units {
		if unit.SolderingStatus {
			s.session.Complete(unit.ID)
		}
	}
	return nil
}

// Units returns the fetched list filtered by the session's IMEI filter.
func (s *SolderingStation) Units() []barcode.Record {
	var out []barcode.Record
	for _, unit := range s.units {
		if s.session.MatchesFilter(unit.IMEINo) {
			out = append(out, unit)
		}
	}
	return out
}

// StatusOf classifies one unit for this stage.
func (s *SolderingStation) StatusOf(unit barcode.Record) workflow.Status {
	return s.session.StatusOf(unit.ID, true, unit.StatusOne, unit.SolderingStatus)
}

// VerifyAndStart re-verifies a unit's barcode record and, only on success,
// unlocks its checklist and opens it.
func (s *SolderingStation) VerifyAndStart(ctx context.Context, unit barcode.Record) error {
	if err := s.client.VerifyIMEIAgain(ctx, unit.IMEINo); err != nil {
		s.notify(err)
		return err
	}
	s.session.Unlock(unit.ID)
	s.session.Open(unit.ID)
	return nil
}

// Open focuses a unit's checklist when its gate has passed.
func (s *SolderingStation) Open(unit barcode.Record) bool {
	if !s.StatusOf(unit).Editable() {
		return false
	}
	return s.session.Open(unit.ID)
}

// Submit posts the open unit's checklist. The submit control is enabled
// only when all 17 points are ticked.
func (s *SolderingStation) Submit(ctx context.Context) error {
	if !s.session.BeginSubmit() {
		err := workflow.ErrChecklistIncomplete
		s.notify(err)
		return err
	}
	focused := s.session.Focused()
	err := s.client.SubmitSoldering(ctx, focused, s.session.Values())
	s.session.EndSubmit(err == nil)
	if err != nil {
		s.notify(err)
		return err
	}
	if s.notifier != nil {
		s.notifier.Success("Successfully Completed")
	}
	return nil
}

func (s *SolderingStation) notify(err error) {
	if s.notifier != nil && err != nil {
		s.notifier.Error(err.Error())
	}
}
