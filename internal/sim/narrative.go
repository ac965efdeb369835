package sim

import (
	"fmt"
	"strings"
)

// Narrative strings kept word-for-word from the labyrinth's fiction.
const (
	narrativeWelcome  = "Welcome to the Labyrinth."
	narrativeCaught   = "The Minotaur catches you! Game Over."
	narrativeEscaped  = "You have collected all three mystical stones and escaped the labyrinth!"
	narrativeHalt     = "You stop and listen carefully."
	narrativeStay     = "You remain in place."
	narrativeObstacle = " You stop at an obstacle."

	narrativeNoLantern   = "You don't have a lantern to use."
	narrativeLanternUsed = "You activate the lantern! A brilliant light paralyzes the Minotaur."
	narrativeLanternDud  = "The lantern flickers but has no effect."

	narrativeHandsFull = "Your hands are full. You leave the %s where it lies."

	cueVeryNear = "The Minotaur's breathing is right behind you!"
	cueNear     = "Heavy footsteps echo nearby."
	cueModerate = "You hear distant sounds in the labyrinth."
	cueFar      = "The labyrinth is eerily quiet."
)

func moveNarrative(move MoveCommand, result moveResult) string {
	if result.Steps == 0 {
		return narrativeStay
	}
	verb := "walk"
	if result.Gait == GaitRun {
		verb = "run"
	}
	msg := fmt.Sprintf("You %s %s for %d steps.", verb, move.Direction, result.Steps)
	if result.StopReason == StopCollision {
		msg += narrativeObstacle
	}
	return msg
}

func lookNarrative(env Environment) string {
	desc := "nothing of interest"
	if len(env.VisibleItems) > 0 {
		names := make([]string, len(env.VisibleItems))
		for i, id := range env.VisibleItems {
			names[i] = string(id)
		}
		desc = strings.Join(names, ", ")
	}
	return fmt.Sprintf("You examine your surroundings. You see: %s.", desc)
}

func grabNarrative(item string, grabbed bool) string {
	if grabbed {
		return fmt.Sprintf("You grab the %s.", item)
	}
	if item == "" {
		item = "item"
	}
	return fmt.Sprintf("You don't see a %s here.", item)
}

// pursuerCue builds the per-turn cue line. Timed modes report their
// remaining seconds; an active pursuer is described only through the
// audio band.
func pursuerCue(pursuer PursuerState, clock float64, band AudioBand) string {
	switch pursuer.Mode {
	case ModeVanished:
		return fmt.Sprintf("The Minotaur has vanished... (%.1fs remaining)", pursuer.ModeRemaining(clock))
	case ModeParalyzed:
		return fmt.Sprintf("The Minotaur is paralyzed by light! (%.1fs remaining)", pursuer.ModeRemaining(clock))
	}
	switch band {
	case AudioVeryNear:
		return cueVeryNear
	case AudioNear:
		return cueNear
	case AudioModerate:
		return cueModerate
	}
	return cueFar
}
