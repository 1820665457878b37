package input

// Gesture is the mode-change intent carried by one tick's buttons.
type Gesture struct {
	Meta int // outer panel step
	Sub  int // inner channel step
}

// Decode evaluates the button snapshot of a single tick.
//
// Holding one button while pressing the other steps the panel: left held
// and right pressed is +1, right held and left pressed is -1. A combined
// gesture in a tick suppresses channel stepping for that tick. Otherwise a
// release steps the channel, left -1 and right +1; when both release in
// the same tick the right button wins.
func Decode(left, right Button) Gesture {
	var g Gesture
	combined := false
	if left.Held() && right.Edge == EdgeFalling {
		g.Meta++
		combined = true
	}
	if right.Held() && left.Edge == EdgeFalling {
		g.Meta--
		combined = true
	}
	if combined {
		return g
	}
	if left.Edge == EdgeRising {
		g.Sub = -1
	}
	if right.Edge == EdgeRising {
		g.Sub = 1
	}
	return g
}
