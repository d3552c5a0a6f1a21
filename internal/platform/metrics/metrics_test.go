package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStore_CountsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStore(reg)

	m.Saved("owner")
	m.Saved("owner")
	m.Deleted("owner", 3)
	m.Deleted("owner", 0)
	m.Size("owner", 5)

	if got := testutil.ToFloat64(m.ops.WithLabelValues("owner", "save")); got != 2 {
		t.Fatalf("expected 2 saves, got %v", got)
	}
	if got := testutil.ToFloat64(m.ops.WithLabelValues("owner", "delete")); got != 3 {
		t.Fatalf("expected 3 deletes, got %v", got)
	}
	if got := testutil.ToFloat64(m.size.WithLabelValues("owner")); got != 5 {
		t.Fatalf("expected size 5, got %v", got)
	}
}

func TestStore_NilIsNoop(t *testing.T) {
	var m *Store
	m.Saved("pet")
	m.Deleted("pet", 1)
	m.Size("pet", 1)
}
