package kernel

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Coordinate is a single axis position on the delivery grid.
type Coordinate int8

// Coordinate bounds of the delivery grid, inclusive.
const (
	MinCoordinate Coordinate = 1
	MaxCoordinate Coordinate = 10
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
// Locations must be created via NewLocation or NewRandomLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or NewRandomLocation")

// Location is an immutable point on the delivery grid. Both coordinates are
// guaranteed to lie within [MinCoordinate, MaxCoordinate] for properly
// constructed values; the zero value is invalid and fails Validate.
//
// Two locations compare equal when their coordinates match, and the distance
// between them is the Manhattan metric (movement is axis-aligned, no
// diagonals).
type Location struct { //nolint:recvcheck // pointer receivers on private setters only
	x     Coordinate
	y     Coordinate
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from the given coordinates.
// Returns an out-of-range validation error if either coordinate lies outside
// the grid; errors for both axes are joined.
func NewLocation(x, y Coordinate) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewRandomLocation creates a Location with uniformly random coordinates.
// Used to seed demo couriers and orders that have no geocoded destination.
func NewRandomLocation() (Location, error) {
	span := int(MaxCoordinate - MinCoordinate + 1)
	x := Coordinate(rand.IntN(span) + int(MinCoordinate)) //nolint:gosec // not cryptographic
	y := Coordinate(rand.IntN(span) + int(MinCoordinate)) //nolint:gosec // not cryptographic
	return NewLocation(x, y)
}

// Validate reports whether the Location was created via a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// X returns the X coordinate.
func (l Location) X() Coordinate {
	return l.x
}

// Y returns the Y coordinate.
func (l Location) Y() Coordinate {
	return l.y
}

// String implements fmt.Stringer as "Location(x,y)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%d,%d)", l.x, l.y)
}

// IsEqual compares two locations by value. Both must be properly constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// Distance returns the Manhattan distance |x1-x2| + |y1-y2| to other.
// Both locations must be properly constructed.
func (l Location) Distance(other Location) (int, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return int(absCoordinate(l.x-other.x) + absCoordinate(l.y-other.y)), nil
}

// Private setters use pointer receivers so construction can run
// self-encapsulated validation per field.
func (l *Location) setX(x Coordinate) error {
	if x < MinCoordinate || x > MaxCoordinate {
		return errs.NewValueIsOutOfRangeError("x", x, MinCoordinate, MaxCoordinate)
	}

	l.x = x
	return nil
}

func (l *Location) setY(y Coordinate) error {
	if y < MinCoordinate || y > MaxCoordinate {
		return errs.NewValueIsOutOfRangeError("y", y, MinCoordinate, MaxCoordinate)
	}

	l.y = y
	return nil
}

func absCoordinate(c Coordinate) Coordinate {
	if c < 0 {
		return -c
	}
	return c
}
