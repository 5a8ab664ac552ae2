package strategy

// Remap linearly maps value from [fromMin, fromMax] onto [toMin, toMax]. A
// collapsed source range maps to toMax when value has reached it and to toMin
// otherwise, so the result is never NaN.
func Remap(value, fromMin, fromMax, toMin, toMax float64) float64 {
	if fromMax == fromMin {
		if value >= fromMax {
			return toMax
		}
		return toMin
	}
	proportion := (value - fromMin) / (fromMax - fromMin)
	return proportion*(toMax-toMin) + toMin
}
