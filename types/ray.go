package types

// A ray with a unit length direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Create a ray. The direction is normalized; a zero direction yields
// ErrDegenerateVector.
func NewRay(origin, dir Vec3) (Ray, error) {
	dir, err := dir.Normalize()
	if err != nil {
		return Ray{}, err
	}
	return Ray{Origin: origin, Dir: dir}, nil
}

// Get the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
