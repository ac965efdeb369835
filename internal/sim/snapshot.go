package sim

import (
	"time"

	"labyrinth-hunt/server/internal/ai"
	itemspkg "labyrinth-hunt/server/internal/items"
	worldpkg "labyrinth-hunt/server/internal/world"
)

// AudioBand partitions the player-to-pursuer distance into the four
// ordered cue bands.
type AudioBand string

const (
	AudioFar      AudioBand = "far"
	AudioModerate AudioBand = "moderate"
	AudioNear     AudioBand = "near"
	AudioVeryNear AudioBand = "very-near"
)

// StopReason explains why a move ended.
type StopReason string

const (
	StopSuccess   StopReason = "SUCCESS"
	StopCollision StopReason = "COLLISION"
)

// Environment is the observable surroundings computed after the player
// phase: open exits from the current cell, items within sight radius,
// and the pursuer audio band.
type Environment struct {
	VisiblePaths []worldpkg.Direction `json:"visiblePaths"`
	VisibleItems []itemspkg.ID        `json:"visibleItems"`
	AudioBand    AudioBand            `json:"audioBand"`
}

// Clone returns a deep copy of the environment.
func (e Environment) Clone() Environment {
	cloned := e
	if len(e.VisiblePaths) > 0 {
		cloned.VisiblePaths = append([]worldpkg.Direction(nil), e.VisiblePaths...)
	}
	if len(e.VisibleItems) > 0 {
		cloned.VisibleItems = append([]itemspkg.ID(nil), e.VisibleItems...)
	}
	return cloned
}

// TurnSnapshot is the immutable record of a completed turn. It carries
// the full pursuer state so journals can replay and fold state forward;
// transport-facing views redact the pursuer position before it leaves
// the process.
type TurnSnapshot struct {
	Sequence    uint64       `json:"sequence"`
	Clock       float64      `json:"clock"`
	Outcome     Outcome      `json:"outcome"`
	Player      PlayerState  `json:"player"`
	Pursuer     PursuerState `json:"pursuer"`
	Decision    ai.Decision  `json:"decision"`
	Environment Environment  `json:"environment"`
	StepsMoved  int          `json:"stepsMoved"`
	TimeTaken   float64      `json:"timeTaken"`
	StopReason  StopReason   `json:"stopReason"`
	Narrative   string       `json:"narrative"`
	Cue         string       `json:"cue"`
	Annotations []string     `json:"annotations,omitempty"`
	RecordedAt  time.Time    `json:"recordedAt"`
}

// Clone returns a deep copy safe to hand to other goroutines.
func (s TurnSnapshot) Clone() TurnSnapshot {
	cloned := s
	cloned.Player = s.Player.Clone()
	cloned.Pursuer = s.Pursuer.Clone()
	cloned.Environment = s.Environment.Clone()
	if s.Decision.Target != nil {
		target := *s.Decision.Target
		cloned.Decision.Target = &target
	}
	if len(s.Annotations) > 0 {
		cloned.Annotations = append([]string(nil), s.Annotations...)
	}
	return cloned
}
