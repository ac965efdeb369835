package world

import "strings"

const (
	DefaultSeed   = "labyrinth"
	DefaultWidth  = 50
	DefaultHeight = 50
	DefaultDepth  = 10
)

const (
	DefaultStaminaMax         = 1.0
	DefaultRunDrainPerStep    = 0.02
	DefaultWalkRecoverPerStep = 0.01
	DefaultSightRadiusWalk    = 2.0
	DefaultSightRadiusRun     = 6.0

	DefaultAudioVeryNear = 3.0
	DefaultAudioNear     = 8.0
	DefaultAudioModerate = 15.0

	DefaultFarThreshold  = 10.0
	DefaultNearThreshold = 5.0
	DefaultCaptureRadius = 0.0

	DefaultVanishMinSeconds       = 5.0
	DefaultVanishMaxSeconds       = 10.0
	DefaultJumpCooldownSeconds    = 600.0
	DefaultParalysisSeconds       = 120.0
	DefaultLanternCooldownSeconds = 720.0

	DefaultTurnSeconds   = 1.0
	DefaultBraidChance   = 0.15
	DefaultRampsPerLevel = 3
)

type Config struct {
	Seed          string  `json:"seed"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Depth         int     `json:"depth"`
	BraidChance   float64 `json:"braidChance"`
	RampsPerLevel int     `json:"rampsPerLevel"`

	StaminaMax         float64 `json:"staminaMax"`
	RunDrainPerStep    float64 `json:"runDrainPerStep"`
	WalkRecoverPerStep float64 `json:"walkRecoverPerStep"`
	SightRadiusWalk    float64 `json:"sightRadiusWalk"`
	SightRadiusRun     float64 `json:"sightRadiusRun"`

	AudioVeryNear float64 `json:"audioVeryNear"`
	AudioNear     float64 `json:"audioNear"`
	AudioModerate float64 `json:"audioModerate"`

	FarThreshold  float64 `json:"farThreshold"`
	NearThreshold float64 `json:"nearThreshold"`
	CaptureRadius float64 `json:"captureRadius"`

	VanishMinSeconds       float64 `json:"vanishMinSeconds"`
	VanishMaxSeconds       float64 `json:"vanishMaxSeconds"`
	JumpCooldownSeconds    float64 `json:"jumpCooldownSeconds"`
	ParalysisSeconds       float64 `json:"paralysisSeconds"`
	LanternCooldownSeconds float64 `json:"lanternCooldownSeconds"`

	TurnSeconds float64 `json:"turnSeconds"`

	PlayerStart  Cell `json:"playerStart"`
	PursuerStart Cell `json:"pursuerStart"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.Width <= 0 {
		normalized.Width = DefaultWidth
	}
	if normalized.Height <= 0 {
		normalized.Height = DefaultHeight
	}
	if normalized.Depth <= 0 {
		normalized.Depth = DefaultDepth
	}
	if normalized.BraidChance < 0 {
		normalized.BraidChance = 0
	}
	if normalized.BraidChance > 1 {
		normalized.BraidChance = 1
	}
	if normalized.RampsPerLevel <= 0 {
		normalized.RampsPerLevel = DefaultRampsPerLevel
	}
	if normalized.StaminaMax <= 0 {
		normalized.StaminaMax = DefaultStaminaMax
	}
	if normalized.RunDrainPerStep <= 0 {
		normalized.RunDrainPerStep = DefaultRunDrainPerStep
	}
	if normalized.WalkRecoverPerStep <= 0 {
		normalized.WalkRecoverPerStep = DefaultWalkRecoverPerStep
	}
	if normalized.SightRadiusWalk <= 0 {
		normalized.SightRadiusWalk = DefaultSightRadiusWalk
	}
	if normalized.SightRadiusRun <= 0 {
		normalized.SightRadiusRun = DefaultSightRadiusRun
	}
	if normalized.AudioVeryNear <= 0 {
		normalized.AudioVeryNear = DefaultAudioVeryNear
	}
	if normalized.AudioNear <= normalized.AudioVeryNear {
		normalized.AudioNear = DefaultAudioNear
	}
	if normalized.AudioModerate <= normalized.AudioNear {
		normalized.AudioModerate = DefaultAudioModerate
	}
	if normalized.FarThreshold <= 0 {
		normalized.FarThreshold = DefaultFarThreshold
	}
	if normalized.NearThreshold <= 0 {
		normalized.NearThreshold = DefaultNearThreshold
	}
	if normalized.NearThreshold > normalized.FarThreshold {
		normalized.NearThreshold = normalized.FarThreshold
	}
	if normalized.CaptureRadius < 0 {
		normalized.CaptureRadius = DefaultCaptureRadius
	}
	if normalized.VanishMinSeconds <= 0 {
		normalized.VanishMinSeconds = DefaultVanishMinSeconds
	}
	if normalized.VanishMaxSeconds < normalized.VanishMinSeconds {
		normalized.VanishMaxSeconds = normalized.VanishMinSeconds
	}
	if normalized.JumpCooldownSeconds <= 0 {
		normalized.JumpCooldownSeconds = DefaultJumpCooldownSeconds
	}
	if normalized.ParalysisSeconds <= 0 {
		normalized.ParalysisSeconds = DefaultParalysisSeconds
	}
	if normalized.LanternCooldownSeconds <= 0 {
		normalized.LanternCooldownSeconds = DefaultLanternCooldownSeconds
	}
	if normalized.TurnSeconds <= 0 {
		normalized.TurnSeconds = DefaultTurnSeconds
	}
	zero := Cell{}
	if normalized.PlayerStart == zero {
		normalized.PlayerStart = DefaultPlayerStart()
	}
	if normalized.PursuerStart == zero {
		normalized.PursuerStart = DefaultPursuerStart()
	}
	// Small grids may leave the default starts outside the volume.
	normalized.PlayerStart = normalized.clampCell(normalized.PlayerStart)
	normalized.PursuerStart = normalized.clampCell(normalized.PursuerStart)
	return normalized
}

func (cfg Config) clampCell(cell Cell) Cell {
	cell.X = clampAxis(cell.X, cfg.Width)
	cell.Y = clampAxis(cell.Y, cfg.Height)
	cell.Z = clampAxis(cell.Z, cfg.Depth)
	return cell
}

func clampAxis(value, size int) int {
	if value < 0 {
		return 0
	}
	if value >= size {
		return size - 1
	}
	return value
}

func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

func DefaultPlayerStart() Cell {
	return Cell{X: 25, Y: 25, Z: 0}
}

func DefaultPursuerStart() Cell {
	return Cell{X: 10, Y: 10, Z: 0}
}

func DefaultConfig() Config {
	return Config{
		Seed:                   DefaultSeed,
		Width:                  DefaultWidth,
		Height:                 DefaultHeight,
		Depth:                  DefaultDepth,
		BraidChance:            DefaultBraidChance,
		RampsPerLevel:          DefaultRampsPerLevel,
		StaminaMax:             DefaultStaminaMax,
		RunDrainPerStep:        DefaultRunDrainPerStep,
		WalkRecoverPerStep:     DefaultWalkRecoverPerStep,
		SightRadiusWalk:        DefaultSightRadiusWalk,
		SightRadiusRun:         DefaultSightRadiusRun,
		AudioVeryNear:          DefaultAudioVeryNear,
		AudioNear:              DefaultAudioNear,
		AudioModerate:          DefaultAudioModerate,
		FarThreshold:           DefaultFarThreshold,
		NearThreshold:          DefaultNearThreshold,
		CaptureRadius:          DefaultCaptureRadius,
		VanishMinSeconds:       DefaultVanishMinSeconds,
		VanishMaxSeconds:       DefaultVanishMaxSeconds,
		JumpCooldownSeconds:    DefaultJumpCooldownSeconds,
		ParalysisSeconds:       DefaultParalysisSeconds,
		LanternCooldownSeconds: DefaultLanternCooldownSeconds,
		TurnSeconds:            DefaultTurnSeconds,
		PlayerStart:            DefaultPlayerStart(),
		PursuerStart:           DefaultPursuerStart(),
	}
}
