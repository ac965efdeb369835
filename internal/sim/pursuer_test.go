package sim

import (
	"testing"

	worldpkg "labyrinth-hunt/server/internal/world"
)

func TestApplyJumpOpensVanishWindow(t *testing.T) {
	cfg := worldpkg.DefaultConfig()
	rng := worldpkg.NewDeterministicRNG("test", "vanish")
	pursuer := PursuerState{Position: worldpkg.Cell{X: 2, Y: 2}, Mode: ModeActive}
	landing := worldpkg.Cell{X: 9, Y: 9}

	if !applyJump(&pursuer, 100, landing, rng, cfg) {
		t.Fatalf("expected jump to apply")
	}
	if pursuer.Mode != ModeVanished {
		t.Fatalf("expected mode VANISHED, got %s", pursuer.Mode)
	}
	if pursuer.ModeExpiresAt < 105 || pursuer.ModeExpiresAt > 110 {
		t.Fatalf("expected expiry within [105,110], got %v", pursuer.ModeExpiresAt)
	}
	if pursuer.JumpReadyAt != 700 {
		t.Fatalf("expected jump cooldown until 700, got %v", pursuer.JumpReadyAt)
	}
	if pursuer.Landing == nil || *pursuer.Landing != landing {
		t.Fatalf("expected landing %+v recorded, got %+v", landing, pursuer.Landing)
	}
	if pursuer.Position != (worldpkg.Cell{X: 2, Y: 2}) {
		t.Fatalf("expected position unchanged until reentry, got %+v", pursuer.Position)
	}
}

func TestApplyJumpRejectedOnCooldown(t *testing.T) {
	cfg := worldpkg.DefaultConfig()
	pursuer := PursuerState{Mode: ModeActive, JumpReadyAt: 500}

	if applyJump(&pursuer, 499, worldpkg.Cell{}, nil, cfg) {
		t.Fatalf("expected jump rejected before cooldown lapses")
	}
	if !applyJump(&pursuer, 500, worldpkg.Cell{}, nil, cfg) {
		t.Fatalf("expected jump accepted once cooldown lapses")
	}
}

func TestApplyJumpRejectedWhileImmune(t *testing.T) {
	cfg := worldpkg.DefaultConfig()
	for _, mode := range []Mode{ModeVanished, ModeParalyzed} {
		pursuer := PursuerState{Mode: mode}
		if applyJump(&pursuer, 0, worldpkg.Cell{}, nil, cfg) {
			t.Fatalf("expected jump rejected while %s", mode)
		}
	}
}

func TestApplyParalysisFixedDuration(t *testing.T) {
	cfg := worldpkg.DefaultConfig()
	pursuer := PursuerState{Mode: ModeActive, Position: worldpkg.Cell{X: 4, Y: 4}}

	if !applyParalysis(&pursuer, 50, cfg) {
		t.Fatalf("expected paralysis to apply")
	}
	if pursuer.Mode != ModeParalyzed {
		t.Fatalf("expected mode PARALYZED, got %s", pursuer.Mode)
	}
	if pursuer.ModeExpiresAt != 170 {
		t.Fatalf("expected expiry exactly 170, got %v", pursuer.ModeExpiresAt)
	}
}

func TestApplyParalysisRejectedWhileImmune(t *testing.T) {
	cfg := worldpkg.DefaultConfig()
	for _, mode := range []Mode{ModeVanished, ModeParalyzed} {
		pursuer := PursuerState{Mode: mode}
		if applyParalysis(&pursuer, 0, cfg) {
			t.Fatalf("expected paralysis rejected while %s", mode)
		}
	}
}

func TestExpireModeReappearsAtLanding(t *testing.T) {
	landing := worldpkg.Cell{X: 7, Y: 7}
	pursuer := PursuerState{
		Position:      worldpkg.Cell{X: 2, Y: 2},
		Mode:          ModeVanished,
		ModeExpiresAt: 10,
		Landing:       &landing,
	}

	if _, ok := expireMode(&pursuer, 9.9); ok {
		t.Fatalf("expected no transition before expiry")
	}
	transition, ok := expireMode(&pursuer, 10)
	if !ok || transition != transitionReappeared {
		t.Fatalf("expected reappearance at expiry, got %v ok=%v", transition, ok)
	}
	if pursuer.Mode != ModeActive {
		t.Fatalf("expected mode ACTIVE, got %s", pursuer.Mode)
	}
	if pursuer.Position != landing {
		t.Fatalf("expected reentry at landing %+v, got %+v", landing, pursuer.Position)
	}
	if pursuer.Landing != nil {
		t.Fatalf("expected landing cleared after reentry")
	}
}

func TestExpireModeParalysisKeepsPosition(t *testing.T) {
	frozen := worldpkg.Cell{X: 3, Y: 5}
	pursuer := PursuerState{Position: frozen, Mode: ModeParalyzed, ModeExpiresAt: 200}

	transition, ok := expireMode(&pursuer, 250)
	if !ok || transition != transitionRecovered {
		t.Fatalf("expected recovery transition, got %v ok=%v", transition, ok)
	}
	if pursuer.Position != frozen {
		t.Fatalf("expected position preserved through paralysis, got %+v", pursuer.Position)
	}
}

func TestModeRemaining(t *testing.T) {
	pursuer := PursuerState{Mode: ModeVanished, ModeExpiresAt: 42}
	if got := pursuer.ModeRemaining(40); got != 2 {
		t.Fatalf("expected 2 seconds remaining, got %v", got)
	}
	if got := pursuer.ModeRemaining(43); got != 0 {
		t.Fatalf("expected 0 after expiry, got %v", got)
	}
	active := PursuerState{Mode: ModeActive}
	if got := active.ModeRemaining(0); got != 0 {
		t.Fatalf("expected active pursuer to report 0, got %v", got)
	}
}
