package game

import "math"

// pow32 is math.Pow for float32.
func pow32(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}
