package scoring

// OversFromBalls converts a valid-ball count to cricket over notation: the
// integer part is completed overs, the fractional digit is balls into the
// current over (e.g. 23 balls -> 3.5). The fractional digit is always in
// [0,5]; this is display notation, not a true decimal.
func OversFromBalls(validBalls int) float64 {
	return float64(validBalls/6) + float64(validBalls%6)/10
}
