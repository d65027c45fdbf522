package controller

import (
	"fmt"

	"github.com/MDSCJ/Data-Collection/internal/form/location"
	"github.com/MDSCJ/Data-Collection/internal/form/members"
	"github.com/MDSCJ/Data-Collection/internal/form/validator"
	"github.com/MDSCJ/Data-Collection/pkg/registry"
)

// State is a copy of everything the controller owns.
type State struct {
	Form              *registry.FormRegistry
	Fields            map[string]string
	Members           []members.Record
	Pin               location.Pin
	FamilyMembersData string
	Verdict           validator.Verdict
	Submitting        bool
	Response          string
	Tone              Tone
	Map               MapState
}

type MapState struct {
	Open        bool
	Initialized bool
	Locating    bool
	Center      location.Coordinates
	Zoom        int
	Marker      location.Coordinates
	HasMarker   bool
	Advisory    location.Advisory
}

// View is what a front end draws.
type View struct {
	Fields            []FieldView
	Members           []MemberView
	LocationStatus    string
	Latitude          string
	Longitude         string
	ValidationMessage string
	InvalidField      string
	ResponseMessage   string
	ResponseTone      Tone
	SubmitEnabled     bool
	Submitting        bool
	Map               MapState
}

type FieldView struct {
	Name        string
	Label       string
	Kind        string
	Placeholder string
	Value       string
	Required    bool
}

type MemberView struct {
	ID                int
	Title             string
	NameKey           string
	AgeKey            string
	IdentifierKey     string
	Name              string
	Age               string
	Identifier        string
	IdentifierVisible bool
}

// Render derives the view from state. It has no side effects.
func Render(s State) View {
	v := View{
		LocationStatus:    s.Pin.Status(),
		Latitude:          s.Pin.LatitudeText(),
		Longitude:         s.Pin.LongitudeText(),
		ValidationMessage: s.Verdict.Message,
		InvalidField:      s.Verdict.Field,
		ResponseMessage:   s.Response,
		ResponseTone:      s.Tone,
		SubmitEnabled:     s.Verdict.Valid && !s.Submitting,
		Submitting:        s.Submitting,
		Map:               s.Map,
	}

	if s.Form != nil {
		for _, f := range s.Form.Fields {
			label := f.Label
			if label == "" {
				label = f.Name
			}
			v.Fields = append(v.Fields, FieldView{
				Name:        f.Name,
				Label:       label,
				Kind:        f.Kind,
				Placeholder: f.Placeholder,
				Value:       s.Fields[f.Name],
				Required:    f.Required(),
			})
		}
	}

	for i, m := range s.Members {
		v.Members = append(v.Members, MemberView{
			ID:                m.ID,
			Title:             fmt.Sprintf("Family Member %d", i+1),
			NameKey:           members.NameKey(m.ID),
			AgeKey:            members.AgeKey(m.ID),
			IdentifierKey:     members.IdentifierKey(m.ID),
			Name:              m.Name,
			Age:               m.Age,
			Identifier:        m.Identifier,
			IdentifierVisible: m.IdentifierVisible,
		})
	}
	return v
}

// View renders the controller's current state.
func (c *Controller) View() View {
	return Render(c.State())
}
