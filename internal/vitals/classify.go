package vitals

// Status is the tier assigned to a heart-rate reading.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusAbnormal Status = "abnormal"
	StatusCritical Status = "critical"
)

// Normal band is inclusive on both ends; anything above criticalAbove is
// critical regardless of history.
const (
	normalMin     = 45
	normalMax     = 120
	criticalAbove = 150
)

func outOfBand(bpm int) bool {
	return bpm < normalMin || bpm > normalMax
}

// Classify maps a heart-rate sample to a status tier. recent holds prior
// samples in chronological order, most recent last. An out-of-band sample
// escalates from abnormal to critical when both of the two most recent prior
// samples were out of band as well; with fewer than two prior samples there
// is no escalation.
func Classify(bpm int, recent []int) Status {
	if bpm > criticalAbove {
		return StatusCritical
	}

	if outOfBand(bpm) {
		n := 0
		start := len(recent) - 2
		if start < 0 {
			start = 0
		}
		for _, prior := range recent[start:] {
			if outOfBand(prior) {
				n++
			}
		}
		if n >= 2 {
			return StatusCritical
		}
		return StatusAbnormal
	}

	return StatusNormal
}
