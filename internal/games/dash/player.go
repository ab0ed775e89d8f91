package dash

import "math"

// Player is the runner. Y is measured up from the floor, X grows to the
// right. Angle is cosmetic.
type Player struct {
	X, Y     float64
	DY       float64
	Angle    float64
	Grounded bool
	Dead     bool
}

// settle snaps the player onto a surface at height y and eases the
// rotation toward the nearest quarter turn.
func (p *Player) settle(y, smoothing float64) {
	p.Y = y
	p.DY = 0
	p.Grounded = true
	p.Angle += (nearestQuarter(p.Angle) - p.Angle) * smoothing
}

// nearestQuarter rounds an angle to the closest multiple of 90 degrees.
func nearestQuarter(a float64) float64 {
	const quarter = math.Pi / 2
	return math.Round(a/quarter) * quarter
}
