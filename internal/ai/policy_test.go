package ai

import "testing"

func testPolicy() Policy {
	return Policy{FarThreshold: 10, NearThreshold: 5}
}

func TestDecideDistanceBands(t *testing.T) {
	policy := testPolicy()
	cases := []struct {
		name string
		s    Situation
		want Kind
	}{
		{"far with jump ready", Situation{Active: true, Distance: 12, JumpReady: true}, Jump},
		{"far on cooldown lurks", Situation{Active: true, Distance: 12, JumpReady: false}, Wait},
		{"exactly far threshold", Situation{Active: true, Distance: 10, JumpReady: true}, Pathfind},
		{"mid band", Situation{Active: true, Distance: 7}, Pathfind},
		{"exactly near threshold", Situation{Active: true, Distance: 5}, Chase},
		{"close", Situation{Active: true, Distance: 3}, Chase},
		{"adjacent", Situation{Active: true, Distance: 1}, Chase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Decide(tc.s); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDecideForcesWait(t *testing.T) {
	policy := testPolicy()

	if got := policy.Decide(Situation{Active: false, Distance: 3}); got != Wait {
		t.Fatalf("expected immobilized pursuer to wait, got %s", got)
	}
	if got := policy.Decide(Situation{Active: true, Terminal: true, Distance: 3}); got != Wait {
		t.Fatalf("expected terminal game to force wait, got %s", got)
	}
	if got := policy.Decide(Situation{Active: true, Terminal: true, Distance: 12, JumpReady: true}); got != Wait {
		t.Fatalf("expected terminal game to outrank jump, got %s", got)
	}
}
