package math

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp limits v to the range [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
