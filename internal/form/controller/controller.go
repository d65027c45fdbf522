package controller

import (
	"context"
	"fmt"

	"github.com/MDSCJ/Data-Collection/internal/common/errors"
	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/common/metrics"
	"github.com/MDSCJ/Data-Collection/internal/form/location"
	"github.com/MDSCJ/Data-Collection/internal/form/members"
	"github.com/MDSCJ/Data-Collection/internal/form/submission"
	"github.com/MDSCJ/Data-Collection/internal/form/validator"
	"github.com/MDSCJ/Data-Collection/pkg/registry"
)

const (
	MessageFixErrors  = "Please fix the errors above before submitting."
	MessageSubmitting = "Submitting data... Please wait."
	MessageSubmitted  = "Data submitted successfully! Thank you."
	MessageSubmitFail = "Error: Failed to submit data. Please try again."
)

// Tone colours the response message.
type Tone int

const (
	ToneNone Tone = iota
	ToneInfo
	ToneSuccess
	ToneError
)

// Submitter sends one snapshot. *submission.Pipeline implements it.
type Submitter interface {
	Submit(ctx context.Context, s submission.Snapshot) submission.Result
}

type Dependencies struct {
	Logger    logger.Logger
	Registry  *registry.FormRegistry
	Validator *validator.FormValidator
	Picker    *location.Picker
	Submitter Submitter
}

// Controller owns all form state. Handle must be called from one goroutine.
type Controller struct {
	logger    logger.Logger
	errors    *errors.ErrorHandler
	form      *registry.FormRegistry
	validator *validator.FormValidator
	picker    *location.Picker
	submitter Submitter

	fields            map[string]string
	members           *members.Registry
	familyMembersData string
	verdict           validator.Verdict
	submitting        bool
	response          string
	tone              Tone
}

// New builds a controller holding one empty member block.
func New(deps Dependencies) (*Controller, error) {
	if deps.Submitter == nil {
		return nil, fmt.Errorf("submitter is required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	form := deps.Registry
	if form == nil {
		form = registry.Default()
	}
	v := deps.Validator
	if v == nil {
		var err error
		v, err = validator.New(form, log)
		if err != nil {
			return nil, err
		}
	}
	picker := deps.Picker
	if picker == nil {
		picker = location.NewPicker(location.PickerDependencies{Logger: log}, nil)
	}

	c := &Controller{
		logger:    log.WithFields(map[string]interface{}{"component": "form-controller"}),
		errors:    errors.NewErrorHandler(log),
		form:      form,
		validator: v,
		picker:    picker,
		submitter: deps.Submitter,
		fields:    make(map[string]string, len(form.Fields)),
		members:   members.NewRegistry(),
	}
	for _, f := range form.Fields {
		c.fields[f.Name] = ""
	}
	c.validate()
	c.addMember()
	return c, nil
}

// Handle applies ev to the form state and returns any async work it requires.
func (c *Controller) Handle(ev Event) Cmd {
	switch e := ev.(type) {
	case FieldInput:
		if _, ok := c.fields[e.Name]; !ok {
			c.logger.Debug("input for unknown field ignored", map[string]interface{}{"field": e.Name})
			return nil
		}
		c.fields[e.Name] = e.Value
		c.validate()

	case AddMember:
		c.addMember()

	case RemoveMember:
		if c.members.Remove(e.ID) {
			c.logger.Info("member removed", map[string]interface{}{"memberId": e.ID, "count": c.members.Count()})
			c.validate()
		}

	case MemberNameChanged:
		if c.members.SetName(e.ID, e.Value) {
			c.validate()
		}

	case MemberAgeChanged:
		if c.members.SetAge(e.ID, e.Value) {
			c.validate()
		}

	case MemberIdentifierChanged:
		if c.members.SetIdentifier(e.ID, e.Value) {
			c.validate()
		}

	case OpenMap:
		c.picker.Open()

	case CloseMap:
		c.picker.Close()

	case MarkerDragged:
		c.picker.MoveMarker(e.To)

	case MapClicked:
		c.picker.ClickMap(e.At)

	case LiveLocate:
		return c.liveLocate()

	case LiveLocateCompleted:
		if err := c.picker.FinishLiveLocate(e.Position, e.Err); err != nil {
			c.errors.Handle("live_locate", err)
		}

	case ConfirmLocation:
		if err := c.picker.Confirm(); err != nil {
			c.errors.Handle("confirm_location", err)
			return nil
		}
		c.validate()

	case Submit:
		return c.submit()

	case SubmissionCompleted:
		c.finishSubmission(e.Result)
	}
	return nil
}

func (c *Controller) addMember() {
	id := c.members.Add()
	c.logger.Info("member added", map[string]interface{}{"memberId": id, "count": c.members.Count()})
	c.validate()
}

func (c *Controller) liveLocate() Cmd {
	if err := c.picker.BeginLiveLocate(); err != nil {
		c.errors.Handle("live_locate", err)
		return nil
	}
	picker := c.picker
	return func(ctx context.Context) Event {
		pos, err := picker.Locate(ctx)
		return LiveLocateCompleted{Position: pos, Err: err}
	}
}

func (c *Controller) submit() Cmd {
	if c.submitting {
		c.errors.Handle("submit", errors.NewSubmissionInFlightError())
		return nil
	}

	c.familyMembersData = c.members.Serialize()
	c.validate()
	if !c.verdict.Valid {
		c.setResponse(MessageFixErrors, ToneError)
		return nil
	}

	c.setResponse(MessageSubmitting, ToneInfo)
	c.submitting = true

	snapshot := c.snapshot()
	submitter := c.submitter
	return func(ctx context.Context) Event {
		return SubmissionCompleted{Result: submitter.Submit(ctx, snapshot)}
	}
}

func (c *Controller) finishSubmission(res submission.Result) {
	c.submitting = false
	if !res.Outcome.Succeeded() {
		err := res.Err
		if err == nil {
			err = errors.NewSubmissionFailedError(fmt.Errorf("outcome %s", res.Outcome))
		}
		c.errors.Handle("submit", err)
		c.setResponse(MessageSubmitFail, ToneError)
		c.validate()
		return
	}

	c.logger.Info("form submitted", map[string]interface{}{
		"submissionId": res.SubmissionID,
		"outcome":      res.Outcome.String(),
	})
	c.setResponse(MessageSubmitted, ToneSuccess)
	for name := range c.fields {
		c.fields[name] = ""
	}
	c.members.Reset()
	c.picker.Reset()
	c.familyMembersData = ""
	c.validate()
	c.addMember()
}

func (c *Controller) snapshot() submission.Snapshot {
	fields := make(map[string]string, len(c.fields))
	for k, v := range c.fields {
		fields[k] = v
	}
	pin := c.picker.Pin()
	return submission.Snapshot{
		Fields:            fields,
		Latitude:          pin.LatitudeText(),
		Longitude:         pin.LongitudeText(),
		FamilyMembersData: c.familyMembersData,
	}
}

func (c *Controller) validate() {
	previous := c.verdict
	c.verdict = c.validator.Validate(validator.Input{
		Pinned:  c.picker.Pin().Pinned,
		Fields:  c.fields,
		Members: c.members.Records(),
	})
	metrics.MembersLive.Set(float64(c.members.Count()))
	if previous != c.verdict {
		c.logger.Debug("validation verdict changed", map[string]interface{}{
			"valid":   c.verdict.Valid,
			"field":   c.verdict.Field,
			"message": c.verdict.Message,
		})
	}
}

func (c *Controller) setResponse(text string, tone Tone) {
	c.response = text
	c.tone = tone
}

// State returns a copy of the current form state for rendering.
func (c *Controller) State() State {
	fields := make(map[string]string, len(c.fields))
	for k, v := range c.fields {
		fields[k] = v
	}
	center, zoom := c.picker.View()
	marker, hasMarker := c.picker.Marker()
	return State{
		Form:              c.form,
		Fields:            fields,
		Members:           c.members.Records(),
		Pin:               c.picker.Pin(),
		FamilyMembersData: c.familyMembersData,
		Verdict:           c.verdict,
		Submitting:        c.submitting,
		Response:          c.response,
		Tone:              c.tone,
		Map: MapState{
			Open:        c.picker.IsOpen(),
			Initialized: c.picker.Initialized(),
			Locating:    c.picker.Locating(),
			Center:      center,
			Zoom:        zoom,
			Marker:      marker,
			HasMarker:   hasMarker,
			Advisory:    c.picker.Advisory(),
		},
	}
}
