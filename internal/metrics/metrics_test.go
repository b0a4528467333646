package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	t.Parallel()
	r := New()
	started := time.Now()
	r.Observe("CreateContact", OutcomeOK, started)
	r.Observe("CreateContact", OutcomeOK, started)
	r.Observe("CreateContact", OutcomeRejected, started)

	assert.InDelta(t, 2, testutil.ToFloat64(r.Requests("CreateContact", OutcomeOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.Requests("CreateContact", OutcomeRejected)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(r.Requests("GetContact", OutcomeOK)), 0)
}

func TestObserve_NilRecorder(t *testing.T) {
	t.Parallel()
	var r *Recorder
	assert.NotPanics(t, func() { r.Observe("ListContacts", OutcomeOK, time.Now()) })
}

func TestHandler(t *testing.T) {
	t.Parallel()
	r := New()
	r.Observe("ListContacts", OutcomeOK, time.Now())

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ssm_contacts_requests_total{operation="ListContacts",outcome="ok"} 1`)
	assert.Contains(t, string(body), "ssm_contacts_request_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}
