package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSubmission(t *testing.T) {
	before := testutil.ToFloat64(Submissions.WithLabelValues("contact", "failed"))

	ObserveSubmission("contact", "failed")
	ObserveSubmission("contact", "failed")

	assert.Equal(t, before+2, testutil.ToFloat64(Submissions.WithLabelValues("contact", "failed")))
}

func TestHandler(t *testing.T) {
	ObserveSubmission("membership", "succeeded")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `verein_submissions_total{form="membership",status="succeeded"}`)
}
