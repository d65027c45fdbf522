package location

import (
	"fmt"
	"strconv"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Pin is the committed location. Dragging or clicking the map never touches it.
type Pin struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Pinned    bool    `json:"pinned"`
}

// LatitudeText is the value of the latitude form field: empty until pinned.
func (p Pin) LatitudeText() string {
	if !p.Pinned {
		return ""
	}
	return formatCommitted(p.Latitude)
}

// LongitudeText is the value of the longitude form field: empty until pinned.
func (p Pin) LongitudeText() string {
	if !p.Pinned {
		return ""
	}
	return formatCommitted(p.Longitude)
}

// Status is the line shown next to the "pick location" control.
func (p Pin) Status() string {
	if !p.Pinned {
		return "Location Status: Not Pinned"
	}
	return fmt.Sprintf("Location Status: Pinned (Lat: %s, Lon: %s)", p.LatitudeText(), p.LongitudeText())
}

func (p Pin) Coordinates() Coordinates {
	return Coordinates{Latitude: p.Latitude, Longitude: p.Longitude}
}

func formatCommitted(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// roundCommitted rounds v to the committed precision.
func roundCommitted(v float64) float64 {
	r, _ := strconv.ParseFloat(formatCommitted(v), 64)
	return r
}

// Advisory is the message line of the map panel.
type Advisory struct {
	Text    string `json:"text"`
	IsError bool   `json:"isError"`
}

const (
	AdvisorySelect      = "Drag the marker or click on the map to select a location."
	AdvisoryFinding     = "Finding your location..."
	AdvisoryNoMarker    = "Please select or find a location first."
	AdvisoryUnsupported = "Geolocation is not supported on this device."
	AdvisoryMapFailed   = "The map could not be loaded."
	AdvisoryBusy        = "Still finding your location, please wait."
)

func markerAdvisory(c Coordinates) string {
	return fmt.Sprintf("Latitude: %.4f, Longitude: %.4f", c.Latitude, c.Longitude)
}

func liveAdvisory(c Coordinates) string {
	return fmt.Sprintf("Live location found! Lat: %.4f, Lon: %.4f", c.Latitude, c.Longitude)
}
