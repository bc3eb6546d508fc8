package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	pending := 3

	m, err := New(reg, func() int { return pending })
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.InitRoutes([]string{"start", "confirm_payment"})
	m.ObserveRoute("start")
	m.ObserveRoute("start")
	m.OutboundError("sendMessage")
	m.BroadcastOutcome("sent")
	m.BroadcastOutcome("skipped")
	m.BroadcastOutcome("sent")

	if got := testutil.ToFloat64(m.updates.WithLabelValues("start")); got != 2 {
		t.Errorf("start updates = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.updates.WithLabelValues("confirm_payment")); got != 0 {
		t.Errorf("confirm_payment updates = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.outboundErrs.WithLabelValues("sendMessage")); got != 1 {
		t.Errorf("outbound errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.broadcastMsgs.WithLabelValues("sent")); got != 2 {
		t.Errorf("broadcast sent = %v, want 2", got)
	}

	pending = 5
	expected := `
# HELP flowershop_pending_interactions Записи в реестре ожидаемых действий.
# TYPE flowershop_pending_interactions gauge
flowershop_pending_interactions 5
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "flowershop_pending_interactions"); err != nil {
		t.Errorf("pending gauge: %v", err)
	}
}

func TestNewRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(reg, func() int { return 0 }); err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(reg, func() int { return 0 }); err == nil {
		t.Error("second New on the same registry should fail")
	}
}
