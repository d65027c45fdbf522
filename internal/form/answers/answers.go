// Package answers reads a pre-filled form from YAML and replays it as
// controller events.
package answers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MDSCJ/Data-Collection/internal/form/controller"
	"github.com/MDSCJ/Data-Collection/internal/form/location"
)

type Answers struct {
	Respondent map[string]string `yaml:"respondent"`
	Location   *Location         `yaml:"location"`
	Members    []Member          `yaml:"members"`
}

type Location struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	// Live asks the device locator instead of using the coordinates above.
	Live bool `yaml:"live"`
}

type Member struct {
	Name       string `yaml:"name"`
	Age        string `yaml:"age"`
	Identifier string `yaml:"identifier"`
}

func Load(path string) (*Answers, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Answers, error) {
	var a Answers
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return &a, nil
}

// Events converts the answers into the input a user would produce on a
// freshly built controller, which already holds member 1. Respondent fields
// follow fieldOrder; names missing from it are ignored.
func (a *Answers) Events(fieldOrder []string) []controller.Event {
	var events []controller.Event

	for _, name := range fieldOrder {
		if v, ok := a.Respondent[name]; ok {
			events = append(events, controller.FieldInput{Name: name, Value: v})
		}
	}

	if len(a.Members) == 0 {
		events = append(events, controller.RemoveMember{ID: 1})
	}
	for i, m := range a.Members {
		id := i + 1
		if i > 0 {
			events = append(events, controller.AddMember{})
		}
		events = append(events,
			controller.MemberNameChanged{ID: id, Value: m.Name},
			controller.MemberAgeChanged{ID: id, Value: m.Age},
		)
		if m.Identifier != "" {
			events = append(events, controller.MemberIdentifierChanged{ID: id, Value: m.Identifier})
		}
	}

	switch {
	case a.Location == nil:
	case a.Location.Live:
		events = append(events, controller.LiveLocate{}, controller.ConfirmLocation{})
	default:
		events = append(events,
			controller.OpenMap{},
			controller.MapClicked{At: location.Coordinates{
				Latitude:  a.Location.Latitude,
				Longitude: a.Location.Longitude,
			}},
			controller.ConfirmLocation{},
		)
	}
	return events
}
