package physics

// Positioned is anything that exposes a 2D world position.
// Entities, navigation agents and obstacles all satisfy it.
type Positioned interface {
	Position() Vec2
}
