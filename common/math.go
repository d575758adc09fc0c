package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// InverseLerp returns where v sits between a and b, clamped to [0, 1].
// A degenerate range reports 0.
func InverseLerp(a, b, v float64) float64 {
	if b == a {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}
