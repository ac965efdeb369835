package stats

import "testing"

func TestDrainClampsAtZero(t *testing.T) {
	pool := NewPool(1.0)
	drained := pool.Drain(100, 0.02)
	if drained.Current != 0 {
		t.Fatalf("expected drain to clamp at zero, got %v", drained.Current)
	}
	if !drained.Empty() {
		t.Fatalf("expected pool to report empty")
	}
	if pool.Current != 1.0 {
		t.Fatalf("expected original pool untouched, got %v", pool.Current)
	}
}

func TestRecoverClampsAtMax(t *testing.T) {
	pool := Pool{Current: 0.95, Max: 1.0}
	recovered := pool.Recover(100, 0.01)
	if recovered.Current != 1.0 {
		t.Fatalf("expected recovery to clamp at max, got %v", recovered.Current)
	}
}

func TestDrainRecoverProportional(t *testing.T) {
	pool := NewPool(1.0)
	drained := pool.Drain(10, 0.02)
	if diff := drained.Current - 0.8; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected 0.8 after 10 running steps, got %v", drained.Current)
	}
	recovered := drained.Recover(5, 0.01)
	if diff := recovered.Current - 0.85; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected 0.85 after 5 walking steps, got %v", recovered.Current)
	}
}

func TestFraction(t *testing.T) {
	pool := Pool{Current: 0.25, Max: 0.5}
	if got := pool.Fraction(); got != 0.5 {
		t.Fatalf("expected fraction 0.5, got %v", got)
	}
	if got := (Pool{}).Fraction(); got != 0 {
		t.Fatalf("expected zero-max pool fraction 0, got %v", got)
	}
}

func TestNewPoolDefaults(t *testing.T) {
	pool := NewPool(0)
	if pool.Max != 1 || pool.Current != 1 {
		t.Fatalf("expected non-positive max to default to 1, got %+v", pool)
	}
}
