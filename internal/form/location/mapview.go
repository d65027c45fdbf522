package location

import "math"

// Map is the map-widget capability the picker drives. Drag and click
// events are delivered to the picker by the host, not by the map.
type Map interface {
	SetView(center Coordinates, zoom int)
	SetMarker(c Coordinates)
	Marker() (Coordinates, bool)
	View() (Coordinates, int)
}

// MapFactory creates the map view once, centred with a draggable marker.
type MapFactory func(center Coordinates, zoom int) (Map, error)

// GridMap is an in-memory map used by the terminal front end. The marker
// moves in zoom-scaled steps.
type GridMap struct {
	center    Coordinates
	zoom      int
	marker    Coordinates
	hasMarker bool
}

// NewGridMap is a MapFactory placing the marker at the centre.
func NewGridMap(center Coordinates, zoom int) (Map, error) {
	return &GridMap{
		center:    center,
		zoom:      zoom,
		marker:    center,
		hasMarker: true,
	}, nil
}

func (g *GridMap) SetView(center Coordinates, zoom int) {
	g.center = center
	g.zoom = zoom
}

func (g *GridMap) SetMarker(c Coordinates) {
	g.marker = clamp(c)
	g.hasMarker = true
}

func (g *GridMap) Marker() (Coordinates, bool) {
	return g.marker, g.hasMarker
}

func (g *GridMap) View() (Coordinates, int) {
	return g.center, g.zoom
}

// StepDegrees is the distance one keypress moves the marker at zoom.
func StepDegrees(zoom int) float64 {
	if zoom < 0 {
		zoom = 0
	}
	return 45 / math.Pow(2, float64(zoom))
}

// Nudge returns c moved by the given number of steps at zoom.
func Nudge(c Coordinates, zoom, north, east int) Coordinates {
	step := StepDegrees(zoom)
	return clamp(Coordinates{
		Latitude:  c.Latitude + float64(north)*step,
		Longitude: c.Longitude + float64(east)*step,
	})
}

func clamp(c Coordinates) Coordinates {
	c.Latitude = math.Max(-90, math.Min(90, c.Latitude))
	for c.Longitude > 180 {
		c.Longitude -= 360
	}
	for c.Longitude < -180 {
		c.Longitude += 360
	}
	return c
}
