package geom

import (
	"fmt"

	"github.com/google/uuid"
)

// WorldVector ties a position to the world it was taken in.
type WorldVector struct {
	World    uuid.UUID
	Position Vector
}

func (v Vector) WithWorld(world uuid.UUID) WorldVector {
	return WorldVector{World: world, Position: v}
}

func (w WorldVector) ToBlockPoint() WorldVector {
	return WorldVector{World: w.World, Position: w.Position.ToBlockPoint()}
}

func (w WorldVector) SameWorld(other WorldVector) bool {
	return w.World == other.World
}

func (w WorldVector) String() string {
	return fmt.Sprintf("%s@%s", w.Position, w.World)
}
