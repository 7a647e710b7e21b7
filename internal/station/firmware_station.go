package station

import (
	"context"
	"errors"

	battery "assemblyline-cloud/internal/battery/domain"
	firmware "assemblyline-cloud/internal/firmware/domain"
	"assemblyline-cloud/internal/workflow"
)

// ErrDeleteNotConfirmed guards the explicit confirmation step before a
// firmware record is removed.
var ErrDeleteNotConfirmed = errors.New("station: delete not confirmed")

// FirmwareStation creates, edits and deletes firmware records. The gate is
// the battery record's batteryConnectedStatus; units already at
// overAllassemblyStatus are shown complete and excluded from the form.
type FirmwareStation struct {
	client   *Client
	session  *Session
	serials  *SerialCounter
	notifier Notifier

	details []battery.Record
}

// NewFirmwareStation constructs the station.
func NewFirmwareStation(client *Client, serials *SerialCounter, notifier Notifier) (*FirmwareStation, error) {
	if client == nil {
		return nil, errors.New("station: nil client")
	}
	if serials == nil {
		return nil, errors.New("station: nil serial counter")
	}
	session, err := NewSession(workflow.StageFirmware, nil)
	if err != nil {
		return nil, err
	}
	return &FirmwareStation{client: client, session: session, serials: serials, notifier: notifier}, nil
}

// WorkTitle returns the assignment title this station serves.
func (s *FirmwareStation) WorkTitle() string {
	return "Frimware update"
}

// Refresh re-fetches the battery list and locks units the server already
// reports as assembled.
func (s *FirmwareStation) Refresh(ctx context.Context) error {
	details, err := s.client.FetchBatteryDetails(ctx)
	if err != nil {
		s.notify(err)
		return err
	}
	s.details = details
	for _, detail := range details {
		if detail.OverallAssemblyStatus {
			s.session.Complete(detail.IMEINo)
		}
	}
	return nil
}

// Details returns the fetched worklist.
func (s *FirmwareStation) Details() []battery.Record {
	return s.details
}

// StatusOf classifies one unit for this stage.
func (s *FirmwareStation) StatusOf(detail battery.Record) workflow.Status {
	return s.session.StatusOf(detail.IMEINo, true, detail.BatteryConnectedStatus, detail.OverallAssemblyStatus)
}

// NextSerial fetches the authoritative next serial. When the endpoint is
// unreachable it falls back to the session counter, which is not
// collision-free across sessions.
func (s *FirmwareStation) NextSerial(ctx context.Context) string {
	slNo, err := s.client.NextFirmwareSerial(ctx)
	if err == nil && slNo != "" {
		return slNo
	}
	return s.serials.NextFallbackSerial()
}

// Create submits a new firmware record; the server allocates the serial.
func (s *FirmwareStation) Create(ctx context.Context, imeiNo, iccidNo string) (*firmware.Record, error) {
	imeiNo = workflow.TrimIMEI(imeiNo)
	if imeiNo == "" {
		err := workflow.ErrEmptyIMEI
		s.notify(err)
		return nil, err
	}
	if iccidNo == "" {
		err := firmware.ErrMissingICCID
		s.notify(err)
		return nil, err
	}
	record, err := s.client.CreateFirmware(ctx, imeiNo, iccidNo)
	if err != nil {
		s.notify(err)
		return nil, err
	}
	s.session.Complete(imeiNo)
	if s.notifier != nil {
		s.notifier.Success("Firmware details created successfully")
	}
	return record, nil
}

// LoadForEdit fetches an existing record to prefill the edit form.
func (s *FirmwareStation) LoadForEdit(ctx context.Context, imeiNo string) (*firmware.Record, error) {
	record, err := s.client.FetchFirmwareByIMEI(ctx, imeiNo)
	if err != nil {
		s.notify(err)
		return nil, err
	}
	return record, nil
}

// SaveEdit submits an update keyed by the record's id.
func (s *FirmwareStation) SaveEdit(ctx context.Context, record *firmware.Record) error {
	if record == nil {
		return firmware.ErrNilRecord
	}
	if err := record.Validate(); err != nil {
		s.notify(err)
		return err
	}
	if err := s.client.EditFirmware(ctx, record.ID, record.IMEINo, record.ICCIDNo, record.SlNo); err != nil {
		s.notify(err)
		return err
	}
	if s.notifier != nil {
		s.notifier.Success("Firmware details updated successfully")
	}
	return nil
}

// Delete removes a firmware record after an explicit confirmation step.
func (s *FirmwareStation) Delete(ctx context.Context, imeiNo string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	if err := s.client.DeleteFirmware(ctx, imeiNo); err != nil {
		s.notify(err)
		return err
	}
	if s.notifier != nil {
		s.notifier.Success("Firmware details deleted successfully")
	}
	return nil
}

func (s *FirmwareStation) notify(err error) {
	if s.notifier != nil && err != nil {
		s.notifier.Error(err.Error())
	}
}
