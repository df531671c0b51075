package physics

// StopEpsilon is the speed below which friction snaps velocity to zero.
const StopEpsilon = 5.0

// Motion holds the movement tuning shared by every movable actor.
type Motion struct {
	Acceleration float64 // units/s²
	MaxSpeed     float64
	Friction     float64 // fraction of speed lost per second
}

// ApplyFriction decays the speed of v by max(0, 1-friction*dt). Speeds that
// end up below StopEpsilon become exactly zero.
func ApplyFriction(v Vector2D, friction, dt float64) Vector2D {
	factor := 1 - friction*dt
	if factor < 0 {
		factor = 0
	}
	v = v.Scale(factor)
	if v.Length() < StopEpsilon {
		return Vector2D{}
	}
	return v
}

// Accelerate applies one frame of acceleration along dir to v. A zero dir
// applies friction instead. When clamp is set, speed is limited to MaxSpeed,
// but only on frames that actually accelerated: overspeed from knockback is
// left to friction.
func (m Motion) Accelerate(v, dir Vector2D, dt float64, clamp bool) Vector2D {
	unit, ok := dir.Direction()
	if !ok {
		return ApplyFriction(v, m.Friction, dt)
	}
	v = v.Add(unit.Scale(m.Acceleration * dt))
	if clamp && v.Length() > m.MaxSpeed {
		v = v.WithLength(m.MaxSpeed)
	}
	return v
}

// Decelerate applies the motion's friction to v
func (m Motion) Decelerate(v Vector2D, dt float64) Vector2D {
	return ApplyFriction(v, m.Friction, dt)
}

// UpdatePosition integrates pos by v over dt
func UpdatePosition(pos, v Vector2D, dt float64) Vector2D {
	return pos.Add(v.Scale(dt))
}
