package client

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"sync"
)

// Form field names, in display order.
const (
	FieldEstimatedPropertyValue    = "estimatedPropertyValue"
	FieldLoanAmount                = "loanAmount"
	FieldCashOutAmount             = "cashOutAmount"
	FieldPropertyValuationPhysical = "propertyValuationPhysical"
	FieldPropertyValuationEvidence = "propertyValuationEvidence"
)

// Fields lists every form field.
var Fields = []string{
	FieldEstimatedPropertyValue,
	FieldLoanAmount,
	FieldCashOutAmount,
	FieldPropertyValuationPhysical,
	FieldPropertyValuationEvidence,
}

// SubmitThreshold is the ratio at and above which the form can't be
// submitted.
const SubmitThreshold = 0.9

// ErrUnknownField is returned by Form.Set for a name not in Fields.
var ErrUnknownField = errors.New("unknown form field")

// numericFields are sent to the calculator. The evidence field is a file
// reference and stays on the form.
var numericFields = []string{
	FieldLoanAmount,
	FieldCashOutAmount,
	FieldEstimatedPropertyValue,
	FieldPropertyValuationPhysical,
}

// State is what the form displays. Error, when set, replaces the ratio.
type State struct {
	LVR   *float64
	Error string
}

// Form holds raw field values and the last calculation outcome.
//
// Every Set fires a calculation in its own goroutine. Requests are not
// cancelled or ordered, so a slow stale response can overwrite a newer
// one.
type Form struct {
	client *Client

	mu     sync.Mutex
	values map[string]string
	state  State

	wg sync.WaitGroup
}

func NewForm(c *Client) *Form {
	return &Form{
		client: c,
		values: make(map[string]string, len(Fields)),
	}
}

// Set stores value under field and fires a calculation.
func (f *Form) Set(field, value string) error {
	if !slices.Contains(Fields, field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	f.mu.Lock()
	f.values[field] = value
	payload := BuildPayload(f.values)
	f.mu.Unlock()

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		ratio, err := f.client.Calculate(context.Background(), payload)

		f.mu.Lock()
		defer f.mu.Unlock()

		if err != nil {
			f.state = State{Error: err.Error()}
			return
		}
		f.state = State{LVR: &ratio}
	}()

	return nil
}

// Value returns the raw value of field.
func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Payload returns the request body the current values produce.
func (f *Form) Payload() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return BuildPayload(f.values)
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit is false while the displayed ratio is at or above
// SubmitThreshold.
func (f *Form) CanSubmit() bool {
	s := f.State()
	return s.LVR == nil || *s.LVR < SubmitThreshold
}

// EvidenceRequired reports whether valuation evidence must be attached,
// which is the case once a physical valuation is entered.
func (f *Form) EvidenceRequired() bool {
	return f.Value(FieldPropertyValuationPhysical) != ""
}

// Wait blocks until every fired calculation has finished.
func (f *Form) Wait() {
	f.wg.Wait()
}

// BuildPayload turns raw field values into a request body. Empty fields
// are omitted, numeric text is sent as a number and anything else as a
// string for the service to reject. The evidence field is never sent.
func BuildPayload(values map[string]string) map[string]any {
	payload := make(map[string]any, len(numericFields))
	for _, field := range numericFields {
		raw := values[field]
		if raw == "" {
			continue
		}

		if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
			payload[field] = v
		} else {
			payload[field] = raw
		}
	}
	return payload
}
