package controller

import (
	"context"

	"github.com/MDSCJ/Data-Collection/internal/form/location"
	"github.com/MDSCJ/Data-Collection/internal/form/submission"
)

// Event is any user action or async completion fed to Handle.
type Event interface {
	event()
}

// Cmd is asynchronous work requested by Handle. The host runs it off the
// controller's thread and feeds the returned Event back through Handle.
type Cmd func(ctx context.Context) Event

type FieldInput struct {
	Name  string
	Value string
}

type AddMember struct{}

type RemoveMember struct{ ID int }

type MemberNameChanged struct {
	ID    int
	Value string
}

type MemberAgeChanged struct {
	ID    int
	Value string
}

type MemberIdentifierChanged struct {
	ID    int
	Value string
}

type OpenMap struct{}

type CloseMap struct{}

type MarkerDragged struct{ To location.Coordinates }

type MapClicked struct{ At location.Coordinates }

type LiveLocate struct{}

type LiveLocateCompleted struct {
	Position location.Coordinates
	Err      error
}

type ConfirmLocation struct{}

type Submit struct{}

type SubmissionCompleted struct {
	Result submission.Result
}

func (FieldInput) event()              {}
func (AddMember) event()               {}
func (RemoveMember) event()            {}
func (MemberNameChanged) event()       {}
func (MemberAgeChanged) event()        {}
func (MemberIdentifierChanged) event() {}
func (OpenMap) event()                 {}
func (CloseMap) event()                {}
func (MarkerDragged) event()           {}
func (MapClicked) event()              {}
func (LiveLocate) event()              {}
func (LiveLocateCompleted) event()     {}
func (ConfirmLocation) event()         {}
func (Submit) event()                  {}
func (SubmissionCompleted) event()     {}
