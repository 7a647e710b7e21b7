package station

import (
	"context"
	"errors"
	"strconv"

	battery "assemblyline-cloud/internal/battery/domain"
	"assemblyline-cloud/internal/workflow"
)

// BatteryStation runs the battery-connection form. The gate is the
// soldering record's status_Soldering flag; units that have not been
// verified yet carry a per-unit Verify Soldering action whose checklist
// rejection is a named failure mode, not a generic error.
type BatteryStation struct {
	client   *Client
	session  *Session
	notifier Notifier

	details     []SolderingDetail
	batteryType string
	voltage     float64
}

// NewBatteryStation constructs the station. The two confirmation checkboxes
// are the session checklist.
func NewBatteryStation(client *Client, notifier Notifier) (*BatteryStation, error) {
	if client == nil {
		return nil, errors.New("station: nil client")
	}
	session, err := NewSession(workflow.StageBattery, []workflow.ChecklistItem{
		{Key: "batteryConnectedStatus", Label: "Battery connected"},
		{Key: "capacitorConnectedStatus", Label: "Capacitor connected"},
	})
	if err != nil {
		return nil, err
	}
	return &BatteryStation{
		client:      client,
		session:     session,
		notifier:    notifier,
		batteryType: battery.BatteryTypeLithiumIon,
	}, nil
}

// WorkTitle returns the assignment title this station serves.
func (s *BatteryStation) WorkTitle() string {
	return "Battery connection & Capacitor & add battery"
}

// Session exposes the state machine.
func (s *BatteryStation) Session() *Session {
	return s.session
}

// SetBatteryType sets the enumerated battery type.
func (s *BatteryStation) SetBatteryType(batteryType string) {
	s.batteryType = batteryType
}

// SetVoltage parses the measured voltage from form input.
func (s *BatteryStation) SetVoltage(input string) error {
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return battery.ErrInvalidVoltage
	}
	s.voltage = value
	return nil
}

// Refresh re-fetches the soldering list and locks units the server already
// reports as battery-connected.
func (s *BatteryStation) Refresh(ctx context.Context) error {
	details, err := s.client.FetchSolderingDetails(ctx)
	if err != nil {
		s.notify(err)
		return err
	}
	s.details = details
	for _, detail := range details {
		if detail.BatteryConnectionStatus {
			s.session.Complete(detail.IMEINo)
		}
	}
	return nil
}

// Details returns the fetched list filtered by the live IMEI filter.
func (s *BatteryStation) Details() []SolderingDetail {
	var out []SolderingDetail
	for _, detail := range s.details {
		if s.session.MatchesFilter(detail.IMEINo) {
			out = append(out, detail)
		}
	}
	return out
}

// SetFilter applies the numeric-only IMEI list filter.
func (s *BatteryStation) SetFilter(input string) {
	s.session.SetFilter(input)
}

// StatusOf classifies one unit for this stage.
func (s *BatteryStation) StatusOf(detail SolderingDetail) workflow.Status {
	return s.session.StatusOf(detail.IMEINo, true, detail.StatusSoldering, detail.BatteryConnectionStatus)
}

// VerifySoldering runs the per-unit gate verification. A checklist
// rejection ("Some fields are not true") gets its own notification so the
// operator is sent back to finish the soldering stage instead of retrying.
func (s *BatteryStation) VerifySoldering(ctx context.Context, detail SolderingDetail) error {
	err := s.client.VerifySoldering(ctx, detail.IMEINo)
	if err == nil {
		s.session.Unlock(detail.IMEINo)
		return nil
	}
	if s.notifier != nil {
		if IsGateViolation(err) {
			s.notifier.Error("Not all 17 soldering fields were completed for IMEI " + detail.IMEINo)
		} else {
			s.notifier.Error(err.Error())
		}
	}
	return err
}

// Open focuses a unit's form when its gate has passed.
func (s *BatteryStation) Open(detail SolderingDetail) bool {
	if !s.StatusOf(detail).Editable() {
		return false
	}
	return s.session.Open(detail.IMEINo)
}

// Submit posts the battery form for the open unit. Both checkboxes must be
// ticked and the voltage positive.
func (s *BatteryStation) Submit(ctx context.Context) error {
	record := &battery.Record{
		IMEINo:      s.session.Focused(),
		BatteryType: s.batteryType,
		Voltage:     s.voltage,
	}
	values := s.session.Values()
	record.BatteryConnectedStatus = values["batteryConnectedStatus"]
	record.CapacitorConnectedStatus = values["capacitorConnectedStatus"]
	if err := record.Validate(); err != nil {
		s.notify(err)
		return err
	}
	if !s.session.BeginSubmit() {
		err := battery.ErrChecksNotConfirmed
		s.notify(err)
		return err
	}
	err := s.client.SubmitBattery(ctx, record)
	s.session.EndSubmit(err == nil)
	if err != nil {
		s.notify(err)
		return err
	}
	if s.notifier != nil {
		s.notifier.Success("Battery connection details added successfully")
	}
	return nil
}

func (s *BatteryStation) notify(err error) {
	if s.notifier != nil && err != nil {
		s.notifier.Error(err.Error())
	}
}
