package answers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/form/controller"
	"github.com/MDSCJ/Data-Collection/internal/form/location"
	"github.com/MDSCJ/Data-Collection/internal/form/submission"
)

const sample = `
respondent:
  full_name: Asha Perera
  phone: "0712345678"
  address: 12 Temple Road
  nickname: ignored
location:
  latitude: 6.9271
  longitude: 79.8612
members:
  - name: Asha
    age: "30"
    identifier: "1234567890"
  - name: Bo
    age: "10"
`

var fieldOrder = []string{"full_name", "phone", "address", "email"}

type recordingSubmitter struct {
	got []submission.Snapshot
}

func (r *recordingSubmitter) Submit(_ context.Context, s submission.Snapshot) submission.Result {
	r.got = append(r.got, s)
	return submission.Result{Outcome: submission.OutcomeAcknowledged, StatusCode: 200}
}

func TestParse(t *testing.T) {
	a, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "Asha Perera", a.Respondent["full_name"])
	require.NotNil(t, a.Location)
	assert.Equal(t, 6.9271, a.Location.Latitude)
	require.Len(t, a.Members, 2)
	assert.Equal(t, Member{Name: "Bo", Age: "10"}, a.Members[1])
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("members: [oops"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	a, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, a.Members, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEvents(t *testing.T) {
	a, err := Parse([]byte(sample))
	require.NoError(t, err)

	events := a.Events(fieldOrder)

	assert.Equal(t, []controller.Event{
		controller.FieldInput{Name: "full_name", Value: "Asha Perera"},
		controller.FieldInput{Name: "phone", Value: "0712345678"},
		controller.FieldInput{Name: "address", Value: "12 Temple Road"},
		controller.MemberNameChanged{ID: 1, Value: "Asha"},
		controller.MemberAgeChanged{ID: 1, Value: "30"},
		controller.MemberIdentifierChanged{ID: 1, Value: "1234567890"},
		controller.AddMember{},
		controller.MemberNameChanged{ID: 2, Value: "Bo"},
		controller.MemberAgeChanged{ID: 2, Value: "10"},
		controller.OpenMap{},
		controller.MapClicked{At: location.Coordinates{Latitude: 6.9271, Longitude: 79.8612}},
		controller.ConfirmLocation{},
	}, events)
}

func TestEvents_NoMembers(t *testing.T) {
	a := &Answers{}
	assert.Equal(t, []controller.Event{controller.RemoveMember{ID: 1}}, a.Events(fieldOrder))
}

func TestReplay_SubmitsAnswers(t *testing.T) {
	a, err := Parse([]byte(sample))
	require.NoError(t, err)
	sub := &recordingSubmitter{}
	c, err := controller.New(controller.Dependencies{Logger: logger.NewTestLogger(t), Submitter: sub})
	require.NoError(t, err)

	view := c.Replay(context.Background(), append(a.Events(fieldOrder), controller.Submit{}))

	assert.Equal(t, controller.MessageSubmitted, view.ResponseMessage)
	require.Len(t, sub.got, 1)
	assert.Equal(t, "Asha (30) [1234567890], Bo (10)", sub.got[0].FamilyMembersData)
	assert.Equal(t, "6.927100", sub.got[0].Latitude)
	assert.Equal(t, "79.861200", sub.got[0].Longitude)
	_, hasNickname := sub.got[0].Fields["nickname"]
	assert.False(t, hasNickname)
}

func TestReplay_LiveLocation(t *testing.T) {
	a := &Answers{
		Respondent: map[string]string{"full_name": "Asha Perera", "phone": "0712345678", "address": "12 Temple Road"},
		Location:   &Location{Live: true},
		Members:    []Member{{Name: "Asha", Age: "30"}},
	}
	sub := &recordingSubmitter{}
	log := logger.NewTestLogger(t)
	picker := location.NewPicker(location.PickerDependencies{
		Logger:  log,
		Locator: location.StaticLocator{Position: location.Coordinates{Latitude: 7.2906, Longitude: 80.6337}},
	}, nil)
	c, err := controller.New(controller.Dependencies{Logger: log, Picker: picker, Submitter: sub})
	require.NoError(t, err)

	view := c.Replay(context.Background(), append(a.Events(fieldOrder), controller.Submit{}))

	assert.Equal(t, controller.MessageSubmitted, view.ResponseMessage)
	require.Len(t, sub.got, 1)
	assert.Equal(t, "7.290600", sub.got[0].Latitude)
	assert.Equal(t, "80.633700", sub.got[0].Longitude)
}

type failingLocator struct {
	cause location.Cause
}

func (f failingLocator) Locate(context.Context, location.Options) (location.Coordinates, error) {
	return location.Coordinates{}, &location.LocateError{Cause: f.cause}
}

func TestReplay_FailedLiveLocationIsNotSent(t *testing.T) {
	a := &Answers{
		Respondent: map[string]string{"full_name": "Asha Perera", "phone": "0712345678", "address": "12 Temple Road"},
		Location:   &Location{Live: true},
		Members:    []Member{{Name: "Asha", Age: "30"}},
	}
	sub := &recordingSubmitter{}
	log := logger.NewTestLogger(t)
	picker := location.NewPicker(location.PickerDependencies{
		Logger:  log,
		Locator: failingLocator{cause: location.CausePermissionDenied},
	}, nil)
	c, err := controller.New(controller.Dependencies{Logger: log, Picker: picker, Submitter: sub})
	require.NoError(t, err)

	view := c.Replay(context.Background(), append(a.Events(fieldOrder), controller.Submit{}))

	assert.Empty(t, sub.got)
	assert.Equal(t, controller.MessageFixErrors, view.ResponseMessage)
	assert.Equal(t, "Location Status: Not Pinned", view.LocationStatus)
	assert.Empty(t, view.Latitude)
	assert.True(t, view.Map.Advisory.IsError)
}

func TestReplay_InvalidAnswersAreNotSent(t *testing.T) {
	a := &Answers{Members: []Member{{Name: "Asha", Age: "30"}}}
	sub := &recordingSubmitter{}
	c, err := controller.New(controller.Dependencies{Logger: logger.NewTestLogger(t), Submitter: sub})
	require.NoError(t, err)

	view := c.Replay(context.Background(), append(a.Events(fieldOrder), controller.Submit{}))

	assert.Equal(t, controller.MessageFixErrors, view.ResponseMessage)
	assert.Equal(t, "Please confirm your location on the map before submitting.", view.ValidationMessage)
	assert.Empty(t, sub.got)
}
