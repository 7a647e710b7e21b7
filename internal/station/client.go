package station

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	barcode "assemblyline-cloud/internal/barcode/domain"
	battery "assemblyline-cloud/internal/battery/domain"
	firmware "assemblyline-cloud/internal/firmware/domain"
	qc "assemblyline-cloud/internal/qc/domain"
	soldering "assemblyline-cloud/internal/soldering/domain"
	"assemblyline-cloud/internal/workflow"
)

// ErrMissingToken short-circuits any call attempted without a bearer token.
var ErrMissingToken = errors.New("station: missing auth token")

// APIError is a failure reported by the production store: either a non-2xx
// status or a success=false envelope. The server message is surfaced
// verbatim to the operator.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("station: http %d", e.Status)
}

// IsGateViolation reports whether the error is a prior-stage checklist
// rejection, as opposed to a generic transport or server failure.
func IsGateViolation(err error) bool {
	if err == nil {
		return false
	}
	return workflow.IsGateViolation(err.Error())
}

// Assignment mirrors the work-list entries handed to an employee.
type Assignment struct {
	ID              string `json:"id"`
	EmpID           string `json:"empId"`
	WorkTitle       string `json:"workTitel"`
	WorkDescription string `json:"workDescription"`
	Status          bool   `json:"status"`
}

// Employee is the work-list envelope for the logged-in employee.
type Employee struct {
	EmpID      string       `json:"empId"`
	Name       string       `json:"name"`
	AssignWork []Assignment `json:"assignWork"`
}

// SolderingDetail is a soldering record with its barcode record embedded
// under the barcodeImeiId key, the shape the battery station consumes.
type SolderingDetail struct {
	soldering.Record
	Barcode *barcode.Record `json:"barcodeImeiId"`
}

// Client is the production-store REST client used by every station.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient constructs a client. The token may be empty; calls made without
// one fail fast with ErrMissingToken instead of going to the network.
func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("station: empty base url")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// AddBarcode registers a unit with its batch and lot numbers.
func (c *Client) AddBarcode(ctx context.Context, imeiNo, batchNo, lotNo string) error {
	body := map[string]any{"imeiNo": imeiNo, "batchNo": batchNo, "lotNo": lotNo}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/production/addBarCode", body, nil)
}

// FetchBarcodes lists registered units, newest first. Older deployments name
// the payload key allBarCode instead of allBarCodeIMEINo; both are accepted
// here so callers never see the raw shape.
func (c *Client) FetchBarcodes(ctx context.Context) ([]barcode.Record, error) {
	var out struct {
		AllBarCodeIMEINo []barcode.Record `json:"allBarCodeIMEINo"`
		AllBarCode       []barcode.Record `json:"allBarCode"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/production/fetchAllBarCodeIMEINo", nil, &out); err != nil {
		return nil, err
	}
	if out.AllBarCodeIMEINo != nil {
		return out.AllBarCodeIMEINo, nil
	}
	return out.AllBarCode, nil
}

// VerifyIMEIAgain re-verifies a unit's barcode record, setting status_ONE.
func (c *Client) VerifyIMEIAgain(ctx context.Context, imeiNo string) error {
	body := map[string]any{"imeiNo": imeiNo}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/production/veriFyImeiNoAgain", body, nil)
}

// SubmitSoldering posts the 17-point checklist for a barcode record id.
func (c *Client) SubmitSoldering(ctx context.Context, barcodeImeiID string, points map[string]bool) error {
	body := map[string]any{"barcodeImeiId": barcodeImeiID}
	for key, value := range points {
		body[key] = value
	}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/production/addSolderingDetails", body, nil)
}

// FetchSolderingDetails lists soldering records with their barcode records.
func (c *Client) FetchSolderingDetails(ctx context.Context) ([]SolderingDetail, error) {
	var out struct {
		SolderingDetailsList []SolderingDetail `json:"solderingDetailsList"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/production/fetchSolderingDetailsandImeiNo", nil, &out); err != nil {
		return nil, err
	}
	return out.SolderingDetailsList, nil
}

// VerifySoldering re-checks a unit's soldering record before the battery
// gate opens. A checklist rejection is detectable with IsGateViolation.
func (c *Client) VerifySoldering(ctx context.Context, imeiNo string) error {
	body := map[string]any{"imeiNo": imeiNo}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/production/verifySolderingDetails", body, nil)
}

// SubmitBattery posts the battery-connection form for a unit.
func (c *Client) SubmitBattery(ctx context.Context, record *battery.Record) error {
	if record == nil {
		return battery.ErrNilRecord
	}
	body := map[string]any{
		"imeiNo":                   record.IMEINo,
		"batteryType":              record.BatteryType,
		"voltage":                  record.Voltage,
		"batteryConnectedStatus":   record.BatteryConnectedStatus,
		"capacitorConnectedStatus": record.CapacitorConnectedStatus,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/production/addBatteryConnectionDetails", body, nil)
}

// FetchBatteryDetails lists battery records, newest first.
func (c *Client) FetchBatteryDetails(ctx context.Context) ([]battery.Record, error) {
	var out struct {
		BatteryConnectionDetailsList []battery.Record `json:"batteryConnectionDetailsList"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/production/fetchBatteryConnectionDetails", nil, &out); err != nil {
		return nil, err
	}
	return out.BatteryConnectionDetailsList, nil
}

// CreateFirmware creates a firmware record; the serial is allocated
// server-side and returned on the record.
func (c *Client) CreateFirmware(ctx context.Context, imeiNo, iccidNo string) (*firmware.Record, error) {
	body := map[string]any{"imeiNo": imeiNo, "iccidNo": iccidNo}
	var out struct {
		FirmWareDetails *firmware.Record `json:"firmWareDetails"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/production/createFirmWare", body, &out); err != nil {
		return nil, err
	}
	return out.FirmWareDetails, nil
}

// FetchFirmwareByIMEI loads one firmware record for the edit form.
func (c *Client) FetchFirmwareByIMEI(ctx context.Context, imeiNo string) (*firmware.Record, error) {
	body := map[string]any{"imeiNo": imeiNo}
	var out struct {
		FirmWareDetails *firmware.Record `json:"firmWareDetails"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/production/fetchFirmwareByImeiNo", body, &out); err != nil {
		return nil, err
	}
	return out.FirmWareDetails, nil
}

// EditFirmware updates an existing firmware record keyed by its id.
func (c *Client) EditFirmware(ctx context.Context, firmwareID, imeiNo, iccidNo, slNo string) error {
	body := map[string]any{
		"firmWareId": firmwareID,
		"imeiNo":     imeiNo,
		"iccidNo":    iccidNo,
		"slNo":       slNo,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/production/editFirmWareDetails", body, nil)
}

// DeleteFirmware removes a firmware record by IMEI.
func (c *Client) DeleteFirmware(ctx context.Context, imeiNo string) error {
	body := map[string]any{"imeiNo": imeiNo}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/production/deleteFirmWareDetails", body, nil)
}

// NextFirmwareSerial fetches the authoritative next serial number.
func (c *Client) NextFirmwareSerial(ctx context.Context) (string, error) {
	var out struct {
		NextSlNo string `json:"nextSlNo"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/production/getNextFirmwareSlNo", nil, &out); err != nil {
		return "", err
	}
	return out.NextSlNo, nil
}

// FetchFirmwareDetails lists firmware records, the QC worklist.
func (c *Client) FetchFirmwareDetails(ctx context.Context) ([]firmware.Record, error) {
	var out struct {
		FirmWareDetailsList []firmware.Record `json:"firmWareDetailsList"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/production/fetchFirmWareDetails", nil, &out); err != nil {
		return nil, err
	}
	return out.FirmWareDetailsList, nil
}

// SubmitQualityCheck posts the QC checklist and returns the stored report.
func (c *Client) SubmitQualityCheck(ctx context.Context, imeiNo, empName string, points map[string]bool) (*qc.Record, error) {
	body := map[string]any{"imeiNo": imeiNo, "empName": empName}
	for key, value := range points {
		body[key] = value
	}
	var out struct {
		QcReport *qc.Record `json:"qcReport"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/production/QualityCheck", body, &out); err != nil {
		return nil, err
	}
	return out.QcReport, nil
}

// ReportsByDate lists the QC reports of one DD-MM-YYYY day. The payload key
// varies between reports and qcReport across deployments; both are accepted.
func (c *Client) ReportsByDate(ctx context.Context, date string) ([]qc.Record, error) {
	body := map[string]any{"date": date}
	var out struct {
		Reports  []qc.Record `json:"reports"`
		QcReport []qc.Record `json:"qcReport"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/production/showAllDateReports", body, &out); err != nil {
		return nil, err
	}
	if out.Reports != nil {
		return out.Reports, nil
	}
	return out.QcReport, nil
}

// FetchWorkList loads the logged-in employee's assignments.
func (c *Client) FetchWorkList(ctx context.Context) (*Employee, error) {
	var out struct {
		Emp *Employee `json:"emp"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/production/FetchLoginEmployeeWorkList", nil, &out); err != nil {
		return nil, err
	}
	return out.Emp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	if c.token == "" {
		return ErrMissingToken
	}

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &envelope)

	if resp.StatusCode >= 300 || !envelope.Success {
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
