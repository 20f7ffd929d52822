package influxmetrics

import (
	"context"
	"testing"
)

func TestClient_NilReceiver_NeverPanics(t *testing.T) {
	var c *Client
	ctx := context.Background()
	c.RecordClassRun(ctx, "spam", 3)
	c.RecordAccuracy(ctx, "test.csv", 8, 10)
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
}

func TestRecordAccuracy_ZeroTotalIsNoop(t *testing.T) {
	c := New("http://127.0.0.1:0", "token", "bucket")
	defer c.Close()
	// Zero total must not divide by zero; this only verifies the call
	// does not panic, since the write is async and fire-and-forget.
	c.RecordAccuracy(context.Background(), "empty.csv", 0, 0)
}
