package region

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/memmaker/voxedit/engine/geom"
)

type fakeWorld struct {
	id        uuid.UUID
	maxHeight int
}

func (w fakeWorld) GetID() uuid.UUID { return w.id }
func (w fakeWorld) MaxHeight() int   { return w.maxHeight }

func newWorld() fakeWorld {
	return fakeWorld{id: uuid.New(), maxHeight: 255}
}

func square(size int) []geom.Vector2D {
	return []geom.Vector2D{
		geom.NewBlockVector2D(0, 0),
		geom.NewBlockVector2D(size, 0),
		geom.NewBlockVector2D(size, size),
		geom.NewBlockVector2D(0, size),
	}
}

func TestPolygonContainsVerticalRange(t *testing.T) {
	r, err := NewPolygon2DRegion(uuid.New(), square(10), 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Contains(geom.NewVector(5, 5, 5)) {
		t.Fatalf("(5,5,5) should be inside")
	}
	if r.Contains(geom.NewVector(5, 15, 5)) {
		t.Fatalf("(5,15,5) is above the range")
	}
	if !r.Contains(geom.NewVector(5, 10.9, 5)) || !r.Contains(geom.NewVector(5, 0, 5)) {
		t.Fatalf("range bounds are inclusive")
	}
	if r.Contains(geom.NewVector(5, -0.1, 5)) {
		t.Fatalf("y=-0.1 floors to -1 and is outside")
	}
}

func TestPolygonContainsEdgesAndConcave(t *testing.T) {
	// an L shape, given clockwise
	points := []geom.Vector2D{
		geom.NewBlockVector2D(0, 0),
		geom.NewBlockVector2D(0, 10),
		geom.NewBlockVector2D(4, 10),
		geom.NewBlockVector2D(4, 4),
		geom.NewBlockVector2D(10, 4),
		geom.NewBlockVector2D(10, 0),
	}
	r, err := NewPolygon2DRegion(uuid.New(), points, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, z int
		want bool
	}{
		{0, 0, true},   // vertex
		{0, 5, true},   // edge
		{10, 2, true},  // edge
		{2, 2, true},   // interior
		{2, 8, true},   // arm along Z
		{8, 2, true},   // arm along X
		{7, 7, false},  // notch
		{4, 7, true},   // notch edge
		{11, 2, false}, // outside
		{-1, 0, false},
	}
	for _, c := range cases {
		if got := r.Contains(geom.NewBlockVector(c.x, 0, c.z)); got != c.want {
			t.Fatalf("Contains(%d,0,%d)=%v, want %v", c.x, c.z, got, c.want)
		}
	}
}

func TestPolygonMetrics(t *testing.T) {
	r, err := NewPolygon2DRegion(uuid.New(), square(4), 2, 6)
	if err != nil {
		t.Fatal(err)
	}
	if r.GetArea() != 16 || r.GetArea2D() != 16 {
		t.Fatalf("area %d / %g", r.GetArea(), r.GetArea2D())
	}
	if r.GetWidth() != 5 || r.GetLength() != 5 || r.GetHeight() != 5 {
		t.Fatalf("dimensions %dx%dx%d", r.GetWidth(), r.GetHeight(), r.GetLength())
	}
	if r.GetVolume() != 80 {
		t.Fatalf("volume %d", r.GetVolume())
	}
	if r.GetMinimumPoint() != geom.NewBlockVector(0, 2, 0) || r.GetMaximumPoint() != geom.NewBlockVector(4, 6, 4) {
		t.Fatalf("bounds %s..%s", r.GetMinimumPoint(), r.GetMaximumPoint())
	}

	triangle, _ := NewPolygon2DRegion(uuid.New(), []geom.Vector2D{
		geom.NewBlockVector2D(0, 0), geom.NewBlockVector2D(3, 0), geom.NewBlockVector2D(0, 3),
	}, 0, 0)
	if triangle.GetArea2D() != 4.5 || triangle.GetArea() != 4 {
		t.Fatalf("triangle area %g / %d", triangle.GetArea2D(), triangle.GetArea())
	}
}

func TestPolygonIterateMatchesContains(t *testing.T) {
	r, _ := NewPolygon2DRegion(uuid.New(), []geom.Vector2D{
		geom.NewBlockVector2D(0, 0), geom.NewBlockVector2D(4, 0), geom.NewBlockVector2D(0, 4),
	}, 1, 2)
	count := 0
	r.Iterate(func(pt geom.Vector) bool {
		if !r.Contains(pt) {
			t.Fatalf("iterated %s which is not contained", pt)
		}
		count++
		return true
	})
	// columns with x+z<=4 in a 5x5 box: 15, two layers
	if count != 30 {
		t.Fatalf("iterated %d positions, want 30", count)
	}
	stopped := 0
	r.Iterate(func(geom.Vector) bool {
		stopped++
		return stopped < 3
	})
	if stopped != 3 {
		t.Fatalf("iteration did not stop, visited %d", stopped)
	}
}

func TestPolygonShift(t *testing.T) {
	r, _ := NewPolygon2DRegion(uuid.New(), square(2), 0, 1)
	moved := r.Shift(geom.NewVector(10.7, 3, -5))
	if moved.GetMinimumPoint() != geom.NewBlockVector(10, 3, -5) {
		t.Fatalf("moved min %s", moved.GetMinimumPoint())
	}
	if r.GetMinimumPoint() != geom.NewBlockVector(0, 0, 0) {
		t.Fatalf("Shift mutated its receiver")
	}
	if !moved.Contains(geom.NewBlockVector(11, 4, -4)) {
		t.Fatalf("moved region lost its interior")
	}
}

func TestSelectorClampsAndRejectsInversion(t *testing.T) {
	w := newWorld()
	s, err := NewPolygon2DSelector(w, nil, -20, 999)
	if err != nil {
		t.Fatal(err)
	}
	if s.MinY() != 0 || s.MaxY() != 255 {
		t.Fatalf("clamped range [%d,%d]", s.MinY(), s.MaxY())
	}
	if _, err := NewPolygon2DSelector(w, nil, 100, 50); !errors.Is(err, ErrInvertedRange) {
		t.Fatalf("expected ErrInvertedRange, got %v", err)
	}
	// both clamp to 255, equal bounds are fine
	if _, err := NewPolygon2DSelector(w, nil, 300, 400); err != nil {
		t.Fatalf("clamped equal bounds rejected: %v", err)
	}
	if _, err := NewPolygon2DRegion(w.id, square(1), 5, 4); !errors.Is(err, ErrInvertedRange) {
		t.Fatalf("expected ErrInvertedRange from region, got %v", err)
	}
}

func TestSelectorLifecycle(t *testing.T) {
	w := newWorld()
	s, _ := NewPolygon2DSelector(w, nil, 0, 10)
	if _, err := s.GetRegion(); !errors.Is(err, ErrIncompleteRegion) {
		t.Fatalf("expected ErrIncompleteRegion, got %v", err)
	}
	for _, p := range []geom.Vector{geom.NewVector(0.5, 3, 0.5), geom.NewVector(6, 3, 0), geom.NewVector(6, 3, 6)} {
		if err := s.AddPoint(p); err != nil {
			t.Fatal(err)
		}
	}
	preview := s.GetIncompleteRegion()
	if !preview.Contains(geom.NewBlockVector(5, 5, 1)) {
		t.Fatalf("preview should contain (5,5,1)")
	}
	s.SetComplete()
	if err := s.AddPoint(geom.NewVector(0, 0, 6)); !errors.Is(err, ErrSelectionComplete) {
		t.Fatalf("expected ErrSelectionComplete, got %v", err)
	}
	r, err := s.GetRegion()
	if err != nil {
		t.Fatal(err)
	}
	if r.GetWorld() != w.id {
		t.Fatalf("region world %s", r.GetWorld())
	}
	points := s.Points()
	points[0] = geom.NewBlockVector2D(100, 100)
	if s.Points()[0] != geom.NewBlockVector2D(0, 0) {
		t.Fatalf("Points exposed internal state: %s", s.Points()[0])
	}

	s.Clear()
	if s.IsComplete() || len(s.Points()) != 0 {
		t.Fatalf("Clear did not reset the selector")
	}
	s.SetComplete()
	_ = s.AddPoint(geom.Zero)
	if _, err := s.GetRegion(); !errors.Is(err, ErrIncompleteRegion) {
		t.Fatalf("a complete selector with fewer than three points must not yield a region, got %v", err)
	}
}

func TestCuboidSelectorAndRegion(t *testing.T) {
	w := newWorld()
	s := NewCuboidSelector(w)
	if _, err := s.GetRegion(); !errors.Is(err, ErrIncompleteRegion) {
		t.Fatalf("expected ErrIncompleteRegion, got %v", err)
	}
	_ = s.AddPoint(geom.NewVector(3, 300, 3))
	_ = s.AddPoint(geom.NewVector(-1, 250, 0))
	if err := s.AddPoint(geom.Zero); !errors.Is(err, ErrSelectionComplete) {
		t.Fatalf("expected ErrSelectionComplete, got %v", err)
	}
	r, err := s.GetRegion()
	if err != nil {
		t.Fatal(err)
	}
	if r.GetMaximumPoint() != geom.NewBlockVector(3, 255, 3) {
		t.Fatalf("max %s", r.GetMaximumPoint())
	}
	if r.GetWidth() != 5 || r.GetHeight() != 6 || r.GetLength() != 4 {
		t.Fatalf("dimensions %dx%dx%d", r.GetWidth(), r.GetHeight(), r.GetLength())
	}
	if r.GetVolume() != 120 {
		t.Fatalf("volume %d", r.GetVolume())
	}
	if !r.Contains(geom.NewVector(-0.5, 252, 3.9)) || r.Contains(geom.NewBlockVector(4, 252, 0)) {
		t.Fatalf("cuboid containment wrong")
	}
}

func TestSelectionWorldScope(t *testing.T) {
	w := newWorld()
	s, _ := NewPolygon2DSelector(w, square(10), 0, 10)
	selection := NewSelection(w, s)
	inside := geom.NewVector(5, 5, 5)
	if !selection.Contains(inside.WithWorld(w.id)) {
		t.Fatalf("point should be selected")
	}
	if selection.Contains(inside.WithWorld(uuid.New())) {
		t.Fatalf("point in another world must not be selected")
	}
	if _, err := selection.Region(); !errors.Is(err, ErrIncompleteRegion) {
		t.Fatalf("expected ErrIncompleteRegion, got %v", err)
	}

	// nothing is selected before the first point, whatever the shape
	origin := geom.Zero.WithWorld(w.id)
	emptyPolygon, _ := NewPolygon2DSelector(w, nil, 0, 10)
	cuboid := NewCuboidSelector(w)
	for name, empty := range map[string]*Selection{
		"polygon": NewSelection(w, emptyPolygon),
		"cuboid":  NewSelection(w, cuboid),
	} {
		if empty.Contains(origin) {
			t.Fatalf("empty %s selection contains the origin", name)
		}
		if got := empty.Selector().GetIncompleteRegion().GetVolume(); got != 0 {
			t.Fatalf("empty %s selection has volume %d", name, got)
		}
	}
	if err := cuboid.AddPoint(geom.Zero); err != nil {
		t.Fatal(err)
	}
	if !NewSelection(w, cuboid).Contains(origin) {
		t.Fatalf("first cuboid corner should be selected")
	}
}
