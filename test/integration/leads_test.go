//go:build integration

package integrationtests

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"foamparty/pkg/model"
	"foamparty/test/integration/testutil"

	"github.com/google/uuid"
)

func futureDate() string {
	return time.Now().AddDate(0, 0, 30).Format(model.DateLayout)
}

func booking(name string) map[string]string {
	return map[string]string{
		"name":      name,
		"email":     "jane@example.com",
		"phone":     "2285551234",
		"date":      futureDate(),
		"time":      "14:00",
		"partySize": "11-15",
		"location":  "Biloxi",
		"package":   "glow",
	}
}

func totalLeads(t *testing.T, c *testutil.Client) int64 {
	t.Helper()
	resp := c.GET(t, "/api/v1/bookings?limit=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list bookings status = %d", resp.StatusCode)
	}
	var page struct {
		TotalCount int64 `json:"total_count"`
	}
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("decode bookings: %v", err)
	}
	return page.TotalCount
}

// TestLeads runs against a live leads service. Start it with
// RATE_LIMIT_REQUESTS=100 so the suite is not throttled.
func TestLeads(t *testing.T) {
	c := testutil.NewTestEnv().Setup(t)

	t.Run("submit is acknowledged and stored", func(t *testing.T) {
		before := totalLeads(t, c)

		resp := c.POST(t, "/api/v1/bookings", booking("Jane Doe"))
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", resp.StatusCode, resp.Body)
		}

		var created struct {
			Data model.SubmissionOutcome `json:"data"`
		}
		if err := resp.DecodeJSON(&created); err != nil {
			t.Fatalf("decode outcome: %v", err)
		}
		if created.Data.State != model.StateSubmitted || created.Data.Confirmation == nil {
			t.Errorf("outcome = %+v", created.Data)
		}

		if after := totalLeads(t, c); after != before+1 {
			t.Errorf("lead count went from %d to %d", before, after)
		}
	})

	t.Run("invalid submit is rejected without storing", func(t *testing.T) {
		before := totalLeads(t, c)

		body := booking("Jane Doe")
		body["date"] = "2000-01-01"
		resp := c.POST(t, "/api/v1/bookings", body)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", resp.StatusCode)
		}

		if after := totalLeads(t, c); after != before {
			t.Errorf("lead count changed from %d to %d", before, after)
		}
	})

	t.Run("idempotent retry is replayed", func(t *testing.T) {
		before := totalLeads(t, c)
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		first := c.POSTWithHeaders(t, "/api/v1/bookings", booking("Retry Parent"), headers)
		second := c.POSTWithHeaders(t, "/api/v1/bookings", booking("Retry Parent"), headers)

		if first.StatusCode != http.StatusCreated || second.StatusCode != http.StatusCreated {
			t.Fatalf("statuses = %d, %d", first.StatusCode, second.StatusCode)
		}
		if second.Header.Get("Idempotent-Replayed") != "true" {
			t.Error("second response should be a replay")
		}
		if after := totalLeads(t, c); after != before+1 {
			t.Errorf("lead count went from %d to %d", before, after)
		}
	})

	t.Run("concurrent submits are all stored", func(t *testing.T) {
		before := totalLeads(t, c)

		const n = 5
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := c.TryPOST("/api/v1/bookings", booking("Concurrent Parent")); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("concurrent submit failed: %v", err)
		}

		if after := totalLeads(t, c); after != before+n {
			t.Errorf("lead count went from %d to %d, want +%d", before, after, n)
		}
	})

	t.Run("offer countdown", func(t *testing.T) {
		resp := c.POST(t, "/api/v1/offers", nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		var started struct {
			Data model.OfferStatus `json:"data"`
		}
		if err := resp.DecodeJSON(&started); err != nil {
			t.Fatalf("decode offer: %v", err)
		}
		if !started.Data.Active {
			t.Fatalf("offer = %+v", started.Data)
		}

		resp = c.GET(t, "/api/v1/offers/"+started.Data.VisitorID)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})
}
