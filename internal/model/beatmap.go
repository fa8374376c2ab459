package model

// Mode is the game mode a difficulty is played in.
type Mode int

const (
	ModeStandard Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

// String returns the mode name used across the UI.
func (m Mode) String() string {
	switch m {
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "catch"
	case ModeMania:
		return "mania"
	default:
		return "standard"
	}
}

// Beatmap represents a single difficulty within a beatmap set.
//
// Only ID, Mode, Rating and Version are needed to classify a difficulty;
// the remaining fields feed the detail overlay. Optional values the mirror
// did not send are zero, with Has* companions where zero is meaningful.
type Beatmap struct {
	// ID is unique within the parent set.
	ID int64

	// Mode is the game mode, already normalised (unknown codes are standard).
	Mode Mode

	// Rating is the star rating. Missing ratings decode as 0.
	Rating float64

	// Version is the difficulty name shown to the user.
	Version string

	// TotalLength and HitLength are in seconds. HasLength is false when the
	// mirror sent neither.
	TotalLength int
	HitLength   int
	HasLength   bool

	BPM      float64
	Accuracy float64
	AR       float64
	CS       float64
	Drain    float64

	MaxCombo      int
	CountCircles  int
	CountSliders  int
	CountSpinners int
	PlayCount     int
	PassCount     int
	HasPassCount  bool
	Checksum      string
}
