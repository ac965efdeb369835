// Package sim hosts the turn-based labyrinth engine: a strictly
// sequential pipeline that applies one player command, advances the
// simulated clock, runs the pursuer's decision policy, and emits an
// immutable snapshot of the completed turn.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"labyrinth-hunt/server/internal/ai"
	itemspkg "labyrinth-hunt/server/internal/items"
	"labyrinth-hunt/server/internal/stats"
	worldpkg "labyrinth-hunt/server/internal/world"
	"labyrinth-hunt/server/logging/hunt"
)

// Engine is the surface exposed to transport and session callers. One
// engine owns one game instance; turns are strictly sequential and no
// state is shared between instances.
type Engine interface {
	// Advance runs one full turn for the supplied command and returns
	// the resulting snapshot. Advancing a terminal instance returns
	// ErrTerminalState without touching state.
	Advance(ctx context.Context, cmd Command) (TurnSnapshot, error)
	// Latest returns the snapshot of the most recently completed turn,
	// or the initial snapshot before any turn has run.
	Latest() TurnSnapshot
	// Config reports the normalized configuration the instance runs on.
	Config() worldpkg.Config
}

type engine struct {
	mu   sync.Mutex
	cfg  worldpkg.Config
	deps Deps

	grid        *worldpkg.Grid
	policy      ai.Policy
	vanishRNG   *rand.Rand
	jumpRNG     *rand.Rand
	lanternHome worldpkg.Cell

	latest TurnSnapshot
}

// New builds a game instance: the labyrinth is generated from the
// config seed, both actors are snapped to their nearest walkable start
// cells, and the sequence-zero snapshot is produced.
func New(cfg worldpkg.Config, deps Deps) (Engine, error) {
	cfg = cfg.Normalized()
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Depth <= 0 {
		return nil, ErrMissingConfig
	}
	grid := worldpkg.Generate(cfg)

	playerStart, ok := grid.ClosestWalkable(cfg.PlayerStart)
	if !ok {
		return nil, ErrMissingConfig
	}
	pursuerStart, ok := grid.ClosestWalkable(cfg.PursuerStart)
	if !ok {
		return nil, ErrMissingConfig
	}

	e := &engine{
		cfg:  cfg,
		deps: deps,
		grid: grid,
		policy: ai.Policy{
			FarThreshold:  cfg.FarThreshold,
			NearThreshold: cfg.NearThreshold,
		},
		vanishRNG: worldpkg.NewDeterministicRNG(cfg.Seed, "pursuer:vanish"),
		jumpRNG:   worldpkg.NewDeterministicRNG(cfg.Seed, "pursuer:jump"),
	}
	if home, ok := grid.Placement(itemspkg.Lantern); ok {
		e.lanternHome = home
	}

	player := PlayerState{
		Position: playerStart,
		Stamina:  stats.NewPool(cfg.StaminaMax),
	}
	pursuer := PursuerState{
		Position: pursuerStart,
		Mode:     ModeActive,
	}
	env := observe(grid, player.Position, GaitWalk, pursuer, cfg)
	e.latest = TurnSnapshot{
		Sequence:    0,
		Clock:       0,
		Outcome:     evaluateOutcome(player, pursuer, cfg),
		Player:      player,
		Pursuer:     pursuer,
		Decision:    ai.WaitDecision(),
		Environment: env,
		StopReason:  StopSuccess,
		Narrative:   narrativeWelcome,
		Cue:         pursuerCue(pursuer, 0, env.AudioBand),
		RecordedAt:  deps.now().Now(),
	}
	return e, nil
}

func (e *engine) Latest() TurnSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest.Clone()
}

func (e *engine) Config() worldpkg.Config {
	return e.cfg
}

// Advance runs the turn pipeline. All mutations happen on working
// copies of the player and pursuer records; the engine's authoritative
// state changes only when the finished snapshot is committed at the
// end, so a caller never observes a half-applied turn.
func (e *engine) Advance(ctx context.Context, cmd Command) (TurnSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.latest.Outcome.Terminal() {
		return TurnSnapshot{}, ErrTerminalState
	}

	player := e.latest.Player.Clone()
	pursuer := e.latest.Pursuer.Clone()
	clock := e.latest.Clock
	sequence := e.latest.Sequence + 1

	var annotations []string
	normalized, defect := Normalize(cmd)
	if defect != "" {
		annotations = append(annotations, "command_degraded:"+defect)
		e.deps.logf("command %q degraded to LOOK: %s", cmd.Type, defect)
		e.deps.Metrics.TelemetryAdd("commands_degraded_total", 1)
		hunt.CommandRejected(ctx, e.deps.Publisher, sequence, actorPlayer, hunt.CommandRejectedPayload{
			Command: string(cmd.Type),
			Reason:  defect,
		})
	}

	// Player phase: mechanics first, then the clock, then effects that
	// key off the post-turn clock.
	var (
		result    moveResult
		narrative string
	)
	observeGait := GaitWalk
	switch normalized.Type {
	case CommandMove:
		player, result = resolveMove(e.grid, player, *normalized.Move, e.cfg)
		observeGait = result.Gait
		narrative = moveNarrative(*normalized.Move, result)
	case CommandGrab:
		narrative = e.resolveGrab(&player, *normalized.Grab)
	case CommandHalt:
		narrative = narrativeHalt
	}

	clock += e.cfg.TurnSeconds + result.TimeTaken
	e.expireTimers(ctx, &pursuer, clock, sequence)
	if normalized.Type == CommandUse {
		narrative = e.resolveUse(ctx, &player, &pursuer, clock, sequence)
	}

	// Outcome after the player phase. WIN and LOSE both short-circuit
	// the pursuer phase; the decision trace records WAIT.
	outcome := evaluateOutcome(player, pursuer, e.cfg)
	decision := ai.WaitDecision()
	if outcome == OutcomeOngoing {
		decision = e.pursuerPhase(ctx, player, &pursuer, clock, sequence, &annotations)
		outcome = evaluateOutcome(player, pursuer, e.cfg)
	}

	env := observe(e.grid, player.Position, observeGait, pursuer, e.cfg)
	switch {
	case outcome == OutcomeWin:
		narrative = narrativeEscaped
	case outcome == OutcomeLose:
		narrative = narrativeCaught
	case normalized.Type == CommandLook:
		narrative = lookNarrative(env)
	}

	snapshot := TurnSnapshot{
		Sequence:    sequence,
		Clock:       clock,
		Outcome:     outcome,
		Player:      player,
		Pursuer:     pursuer,
		Decision:    decision,
		Environment: env,
		StepsMoved:  result.Steps,
		TimeTaken:   result.TimeTaken,
		StopReason:  result.StopReason,
		Narrative:   narrative,
		Cue:         pursuerCue(pursuer, clock, env.AudioBand),
		Annotations: annotations,
		RecordedAt:  e.deps.now().Now(),
	}
	if snapshot.StopReason == "" {
		snapshot.StopReason = StopSuccess
	}

	e.latest = snapshot

	e.deps.Metrics.TelemetryAdd("turns_total", 1)
	hunt.TurnCompleted(ctx, e.deps.Publisher, sequence, actorPlayer, hunt.TurnCompletedPayload{
		Command: string(normalized.Type),
		Steps:   result.Steps,
		Stamina: player.Stamina.Current,
		Clock:   clock,
		Outcome: string(outcome),
	})
	switch outcome {
	case OutcomeWin:
		hunt.PlayerEscaped(ctx, e.deps.Publisher, sequence, actorPlayer, hunt.TerminalPayload{
			Outcome: string(outcome),
			Turns:   sequence,
			Clock:   clock,
		})
	case OutcomeLose:
		hunt.PlayerCaptured(ctx, e.deps.Publisher, sequence, actorPlayer, hunt.TerminalPayload{
			Outcome: string(outcome),
			Turns:   sequence,
			Clock:   clock,
		})
	}

	return snapshot.Clone(), nil
}

const (
	actorPlayer  = "player"
	actorPursuer = "minotaur"
)

// resolveGrab picks up the named item when its home cell matches the
// player's position and a held slot is free. Failure is narrated, never
// fatal.
func (e *engine) resolveGrab(player *PlayerState, grab GrabCommand) string {
	id := itemspkg.ID(grab.Item)
	cell, placed := e.grid.Placement(id)
	if !placed || cell != player.Position {
		return grabNarrative(grab.Item, false)
	}
	if player.Inventory.Full() {
		return fmt.Sprintf(narrativeHandsFull, grab.Item)
	}
	if !player.Inventory.Add(id) {
		return grabNarrative(grab.Item, false)
	}
	e.grid.RemoveItem(id)
	e.deps.Metrics.TelemetryAdd("items_grabbed_total", 1)
	return grabNarrative(grab.Item, true)
}

// resolveUse activates the lantern: possession is required, and an
// immune pursuer cannot be targeted, in which case the lantern is kept.
// On success the lantern is consumed and its respawn timer starts.
func (e *engine) resolveUse(ctx context.Context, player *PlayerState, pursuer *PursuerState, clock float64, sequence uint64) string {
	if !player.Inventory.Contains(itemspkg.Lantern) {
		return narrativeNoLantern
	}
	if !applyParalysis(pursuer, clock, e.cfg) {
		return narrativeLanternDud
	}
	player.Inventory.Remove(itemspkg.Lantern)
	pursuer.LanternOut = true
	pursuer.LanternReadyAt = clock + e.cfg.LanternCooldownSeconds
	e.deps.Metrics.TelemetryAdd("lantern_uses_total", 1)
	hunt.PursuerParalyzed(ctx, e.deps.Publisher, sequence, actorPursuer, hunt.PursuerModePayload{
		Mode:    string(ModeParalyzed),
		Until:   pursuer.ModeExpiresAt,
		Clock:   clock,
		Trigger: "lantern",
	})
	return narrativeLanternUsed
}

// expireTimers advances the pursuer state machine and the lantern
// respawn to the new clock position.
func (e *engine) expireTimers(ctx context.Context, pursuer *PursuerState, clock float64, sequence uint64) {
	if transition, ok := expireMode(pursuer, clock); ok {
		payload := hunt.PursuerModePayload{Mode: string(ModeActive), Clock: clock}
		switch transition {
		case transitionReappeared:
			hunt.PursuerReappeared(ctx, e.deps.Publisher, sequence, actorPursuer, payload)
		case transitionRecovered:
			hunt.PursuerRecovered(ctx, e.deps.Publisher, sequence, actorPursuer, payload)
		}
	}
	if pursuer.LanternOut && clock >= pursuer.LanternReadyAt {
		pursuer.LanternOut = false
		pursuer.LanternReadyAt = 0
		e.grid.PlaceItem(itemspkg.Lantern, e.lanternHome)
		hunt.LanternRespawned(ctx, e.deps.Publisher, sequence, hunt.LanternRespawnedPayload{Clock: clock})
	}
}

// pursuerPhase runs the decision policy and applies the result. An
// unreachable target substitutes WAIT and annotates the snapshot.
func (e *engine) pursuerPhase(ctx context.Context, player PlayerState, pursuer *PursuerState, clock float64, sequence uint64, annotations *[]string) ai.Decision {
	kind := e.policy.Decide(ai.Situation{
		Active:    pursuer.Active(),
		Distance:  player.Position.DistanceTo(pursuer.Position),
		JumpReady: pursuer.JumpReady(clock),
	})

	switch kind {
	case ai.Jump:
		landing, ok := ai.JumpLanding(e.grid, player.Position, e.jumpRNG)
		if !ok || !applyJump(pursuer, clock, landing, e.vanishRNG, e.cfg) {
			*annotations = append(*annotations, "policy_wait_substituted:jump")
			e.deps.logf("pursuer jump substituted with WAIT at turn %d", sequence)
			e.deps.Metrics.TelemetryAdd("policy_wait_substituted_total", 1)
			return ai.WaitDecision()
		}
		e.deps.Metrics.TelemetryAdd("pursuer_jumps_total", 1)
		hunt.PursuerVanished(ctx, e.deps.Publisher, sequence, actorPursuer, hunt.PursuerModePayload{
			Mode:    string(ModeVanished),
			Until:   pursuer.ModeExpiresAt,
			Clock:   clock,
			Trigger: "jump",
		})
		target := landing
		return ai.Decision{Kind: ai.Jump, Target: &target}
	case ai.Pathfind:
		step, ok := ai.NextPathfindStep(e.grid, pursuer.Position, player.Position)
		if !ok {
			*annotations = append(*annotations, "policy_wait_substituted:pathfind")
			e.deps.logf("pursuer pathfind substituted with WAIT at turn %d", sequence)
			e.deps.Metrics.TelemetryAdd("policy_wait_substituted_total", 1)
			return ai.WaitDecision()
		}
		pursuer.Position = step
		target := player.Position
		return ai.Decision{Kind: ai.Pathfind, Target: &target}
	case ai.Chase:
		step, ok := ai.NextChaseStep(e.grid, pursuer.Position, player.Position)
		if !ok {
			*annotations = append(*annotations, "policy_wait_substituted:chase")
			e.deps.logf("pursuer chase substituted with WAIT at turn %d", sequence)
			e.deps.Metrics.TelemetryAdd("policy_wait_substituted_total", 1)
			return ai.WaitDecision()
		}
		pursuer.Position = step
		target := player.Position
		return ai.Decision{Kind: ai.Chase, Target: &target}
	}
	return ai.WaitDecision()
}
