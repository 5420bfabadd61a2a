package statistics

import (
	"fmt"
	"math"
)

// HMS is a whole number of seconds split into hours, minutes and seconds
type HMS struct {
	Hours   int64
	Minutes int64
	Seconds int64
}

// SplitDuration floors secs and splits it so that
// Hours*3600 + Minutes*60 + Seconds == floor(secs). Negative input is treated as 0.
func SplitDuration(secs float64) HMS {
	if math.IsNaN(secs) || secs <= 0 {
		return HMS{}
	}
	total := int64(math.Floor(secs))
	return HMS{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// TotalSeconds reassembles the split value
func (h HMS) TotalSeconds() int64 {
	return h.Hours*3600 + h.Minutes*60 + h.Seconds
}

// String renders the value as "1hrs 4min 0sec"
func (h HMS) String() string {
	return fmt.Sprintf("%dhrs %dmin %dsec", h.Hours, h.Minutes, h.Seconds)
}
