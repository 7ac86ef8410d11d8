package vitals

import (
	"errors"
	"math/rand"
)

// Mode selects the bpm range a simulated reading is drawn from.
type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeAbnormal Mode = "abnormal"
	ModeAttack   Mode = "attack"
	ModeRandom   Mode = "random"
)

var ErrInvalidMode = errors.New("mode must be one of normal, abnormal, attack, random")

// ParseMode validates a caller-supplied mode tag. An empty tag defaults to
// normal.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeNormal, nil
	case ModeNormal, ModeAbnormal, ModeAttack, ModeRandom:
		return Mode(s), nil
	default:
		return "", ErrInvalidMode
	}
}

// Draw produces a pseudo-random bpm for the given mode.
//
// normal draws uniform [60,90]; abnormal coin-flips between the high
// [121,150] and low [35,44] sub-ranges; attack draws uniform [155,190];
// random picks a sub-range with weights 0.90 normal, 0.07 abnormal-high,
// 0.02 abnormal-low, 0.01 attack.
func Draw(mode Mode) int {
	switch mode {
	case ModeAbnormal:
		if rand.Intn(2) == 0 {
			return drawRange(121, 150)
		}
		return drawRange(35, 44)
	case ModeAttack:
		return drawRange(155, 190)
	case ModeRandom:
		switch p := rand.Float64(); {
		case p < 0.90:
			return drawRange(60, 90)
		case p < 0.97:
			return drawRange(121, 150)
		case p < 0.99:
			return drawRange(35, 44)
		default:
			return drawRange(155, 190)
		}
	default:
		return drawRange(60, 90)
	}
}

// drawRange returns a uniform draw from [lo, hi] inclusive.
func drawRange(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}
