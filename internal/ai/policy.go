package ai

// Policy holds the distance thresholds that partition pursuer behavior.
// Distances compare against the same Euclidean metric the audio cues
// use, so tuning one tunes both.
type Policy struct {
	FarThreshold  float64
	NearThreshold float64
}

// Situation captures the inputs the policy reads for one turn.
type Situation struct {
	Active    bool
	Terminal  bool
	Distance  float64
	JumpReady bool
}

// Decide maps a situation to an intent. Order matters: a terminal game
// or an immobilized pursuer always waits, a distant pursuer jumps only
// when its cooldown has lapsed and otherwise lurks, and the mid and
// close bands pathfind and chase respectively.
func (p Policy) Decide(s Situation) Kind {
	if s.Terminal || !s.Active {
		return Wait
	}
	if s.Distance > p.FarThreshold {
		if s.JumpReady {
			return Jump
		}
		return Wait
	}
	if s.Distance > p.NearThreshold {
		return Pathfind
	}
	return Chase
}
