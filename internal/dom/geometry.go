package dom

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Offset returns the position of (x, y) relative to the center of r,
// normalized to [-1, 1] on each axis. Empty rects yield zero.
func (r Rect) Offset(x, y float64) (float64, float64) {
	if r.Width <= 0 || r.Height <= 0 {
		return 0, 0
	}

	cx, cy := r.Center()
	return clamp((x-cx)/(r.Width/2)), clamp((y-cy)/(r.Height/2))
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
