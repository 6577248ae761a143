//go:build unit

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPRequest(t *testing.T) {
	counter := httpRequestsTotal.WithLabelValues("GET", "/items/:id", "200")
	before := testutil.ToFloat64(counter)

	ObserveHTTPRequest("GET", "/items/:id", "200", 15*time.Millisecond)
	ObserveHTTPRequest("GET", "/items/:id", "200", 5*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestDomainCounters(t *testing.T) {
	created := testutil.ToFloat64(bookingsCreated)
	BookingCreated()
	assert.Equal(t, created+1, testutil.ToFloat64(bookingsCreated))

	approved := testutil.ToFloat64(bookingDecisions.WithLabelValues("APPROVED"))
	BookingDecided("APPROVED")
	assert.Equal(t, approved+1, testutil.ToFloat64(bookingDecisions.WithLabelValues("APPROVED")))

	comments := testutil.ToFloat64(commentsAdded)
	CommentAdded()
	assert.Equal(t, comments+1, testutil.ToFloat64(commentsAdded))

	hits := testutil.ToFloat64(userCacheLookups.WithLabelValues("hit"))
	UserCacheLookup("hit")
	assert.Equal(t, hits+1, testutil.ToFloat64(userCacheLookups.WithLabelValues("hit")))
}
