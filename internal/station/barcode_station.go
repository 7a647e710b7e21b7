package station

import (
	"context"
	"errors"

	barcode "assemblyline-cloud/internal/barcode/domain"
	"assemblyline-cloud/internal/workflow"
)

// BarcodeStation is the entry workstation: the operator scans an IMEI, the
// batch and lot numbers are generated locally, and submission registers the
// unit. No gate applies here.
type BarcodeStation struct {
	client   *Client
	serials  *SerialCounter
	notifier Notifier

	imeiNo  string
	batchNo string
	lotNo   string
	units   []barcode.Record
}

// NewBarcodeStation constructs the station with batch and lot prefilled.
func NewBarcodeStation(client *Client, serials *SerialCounter, notifier Notifier) (*BarcodeStation, error) {
	if client == nil {
		return nil, errors.New("station: nil client")
	}
	if serials == nil {
		return nil, errors.New("station: nil serial counter")
	}
	s := &BarcodeStation{client: client, serials: serials, notifier: notifier}
	s.batchNo, s.lotNo = serials.NextBatchLot()
	return s, nil
}

// WorkTitle returns the assignment title this station serves.
func (s *BarcodeStation) WorkTitle() string {
	return "Add Barcode"
}

// SetIMEI normalizes and stores scanner input.
func (s *BarcodeStation) SetIMEI(input string) {
	s.imeiNo = workflow.TrimIMEI(input)
}

// IMEI returns the current form value.
func (s *BarcodeStation) IMEI() string {
	return s.imeiNo
}

// BatchNo returns the generated batch number.
func (s *BarcodeStation) BatchNo() string {
	return s.batchNo
}

// LotNo returns the generated lot number.
func (s *BarcodeStation) LotNo() string {
	return s.lotNo
}

// Refresh re-fetches the running history list, newest first.
func (s *BarcodeStation) Refresh(ctx context.Context) error {
	units, err := s.client.FetchBarcodes(ctx)
	if err != nil {
		s.notify(err)
		return err
	}
	s.units = units
	return nil
}

// Units returns the fetched history list.
func (s *BarcodeStation) Units() []barcode.Record {
	return s.units
}

// Submit registers the scanned unit. On success the IMEI field clears, a
// fresh batch/lot pair is generated and the history list is re-fetched; on
// failure the form stays populated for a manual retry.
func (s *BarcodeStation) Submit(ctx context.Context) error {
	if s.imeiNo == "" {
		err := workflow.ErrEmptyIMEI
		s.notify(err)
		return err
	}
	if err := s.client.AddBarcode(ctx, s.imeiNo, s.batchNo, s.lotNo); err != nil {
		s.notify(err)
		return err
	}
	if s.notifier != nil {
		s.notifier.Success("Barcode added successfully")
	}
	s.imeiNo = ""
	s.batchNo, s.lotNo = s.serials.NextBatchLot()
	return s.Refresh(ctx)
}

// VerifyAgain re-verifies a registered unit, opening the soldering gate.
func (s *BarcodeStation) VerifyAgain(ctx context.Context, imeiNo string) error {
	if err := s.client.VerifyIMEIAgain(ctx, imeiNo); err != nil {
		s.notify(err)
		return err
	}
	if s.notifier != nil {
		s.notifier.Success("IMEI verified")
	}
	return nil
}

func (s *BarcodeStation) notify(err error) {
	if s.notifier != nil && err != nil {
		s.notifier.Error(err.Error())
	}
}
