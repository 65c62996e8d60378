package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestCounters_Increment(t *testing.T) {
	before := testutil.ToFloat64(SalesRejectedTotal.WithLabelValues("insufficient_stock"))
	SalesRejectedTotal.WithLabelValues("insufficient_stock").Inc()
	if got := testutil.ToFloat64(SalesRejectedTotal.WithLabelValues("insufficient_stock")); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}
