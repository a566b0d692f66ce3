package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_CalculatesOnEveryChange(t *testing.T) {
	f := NewForm(New(newTestService(t).URL))

	require.NoError(t, f.Set(FieldEstimatedPropertyValue, "700000"))
	f.Wait()
	assert.Equal(t, "loanAmount must be a number between 80,000 and 2,000,000.", f.State().Error)
	assert.Nil(t, f.State().LVR)

	require.NoError(t, f.Set(FieldLoanAmount, "500000"))
	f.Wait()
	require.NotNil(t, f.State().LVR)
	assert.InDelta(t, 500000.0/700000.0, *f.State().LVR, 1e-12)
	assert.Empty(t, f.State().Error)

	require.NoError(t, f.Set(FieldCashOutAmount, "50000"))
	f.Wait()
	require.NotNil(t, f.State().LVR)
	assert.InDelta(t, 0.785714, *f.State().LVR, 1e-6)
	assert.True(t, f.CanSubmit())
}

func TestForm_CanSubmit(t *testing.T) {
	f := NewForm(New(newTestService(t).URL))
	assert.True(t, f.CanSubmit())

	require.NoError(t, f.Set(FieldEstimatedPropertyValue, "100000"))
	require.NoError(t, f.Set(FieldLoanAmount, "90000"))
	f.Wait()

	// The first two requests race. Settle the state with one more change.
	require.NoError(t, f.Set(FieldCashOutAmount, ""))
	f.Wait()

	require.NotNil(t, f.State().LVR)
	assert.InDelta(t, 0.9, *f.State().LVR, 1e-12)
	assert.False(t, f.CanSubmit())
}

func TestForm_Payload(t *testing.T) {
	f := NewForm(New("http://127.0.0.1:0"))

	require.NoError(t, f.Set(FieldLoanAmount, "100000"))
	require.NoError(t, f.Set(FieldCashOutAmount, ""))
	require.NoError(t, f.Set(FieldEstimatedPropertyValue, "abc"))
	require.NoError(t, f.Set(FieldPropertyValuationEvidence, "valuation.pdf"))
	f.Wait()

	assert.Equal(t, map[string]any{
		"loanAmount":             100000.0,
		"estimatedPropertyValue": "abc",
	}, f.Payload())

	// The unreachable address surfaces as a display error.
	assert.NotEmpty(t, f.State().Error)
	assert.Nil(t, f.State().LVR)
}

func TestForm_TextIsRejectedByService(t *testing.T) {
	f := NewForm(New(newTestService(t).URL))

	require.NoError(t, f.Set(FieldLoanAmount, "lots"))
	f.Wait()

	assert.Equal(t, "loanAmount must be a number between 80,000 and 2,000,000.", f.State().Error)
}

func TestForm_EvidenceRequired(t *testing.T) {
	f := NewForm(New(newTestService(t).URL))
	assert.False(t, f.EvidenceRequired())

	require.NoError(t, f.Set(FieldPropertyValuationPhysical, "650000"))
	assert.True(t, f.EvidenceRequired())

	require.NoError(t, f.Set(FieldPropertyValuationPhysical, ""))
	assert.False(t, f.EvidenceRequired())
	f.Wait()
}

func TestForm_UnknownField(t *testing.T) {
	f := NewForm(New(newTestService(t).URL))

	err := f.Set("interestRate", "5")
	assert.ErrorIs(t, err, ErrUnknownField)
}

// A slow response to an older edit overwrites the result of a newer one.
func TestForm_StaleResponseWins(t *testing.T) {
	release := make(chan struct{})
	fastDone := make(chan struct{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		if body["loanAmount"] == 100000.0 {
			<-release
			_, _ = w.Write([]byte(`{"lvr": 0.5}`))
			return
		}
		_, _ = w.Write([]byte(`{"lvr": 0.6}`))
		close(fastDone)
	}))
	defer ts.Close()

	f := NewForm(New(ts.URL))

	require.NoError(t, f.Set(FieldLoanAmount, "100000"))
	require.NoError(t, f.Set(FieldLoanAmount, "120000"))

	<-fastDone
	require.Eventually(t, func() bool {
		s := f.State()
		return s.LVR != nil && *s.LVR == 0.6
	}, time.Second, 5*time.Millisecond)

	close(release)
	f.Wait()

	require.NotNil(t, f.State().LVR)
	assert.Equal(t, 0.5, *f.State().LVR)
}
