package verdict

// Cutoffs used when contrasting raw and whitened streams.
const (
	CompareChiSquareCutoff = 0.05
	CompareMonobitCutoff   = 0.01
)

type Change string

const (
	Improved Change = "IMPROVED"
	Same     Change = "SAME"
	Centered Change = "CENTERED"
	Biased   Change = "BIASED"
	Passed   Change = "PASS"
	Failed   Change = "FAIL"
)

// EntropyChange is IMPROVED only when the processed entropy is strictly higher.
func EntropyChange(raw, processed float64) Change {
	if processed > raw {
		return Improved
	}
	return Same
}

// MeanChange is CENTERED when the processed mean sits strictly closer to ideal.
func MeanChange(raw, processed, ideal float64) Change {
	if abs(processed-ideal) < abs(raw-ideal) {
		return Centered
	}
	return Biased
}

// PValueChange passes when the processed p-value is strictly above cutoff.
func PValueChange(processed, cutoff float64) Change {
	if processed > cutoff {
		return Passed
	}
	return Failed
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
