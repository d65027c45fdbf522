// Package ui is the terminal front end of the household form.
package ui

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MDSCJ/Data-Collection/internal/form/controller"
	"github.com/MDSCJ/Data-Collection/internal/form/location"
)

const helpLine = "tab/shift+tab move • ctrl+a add member • ctrl+d remove member • ctrl+l map • ctrl+g live location • ctrl+s submit • ctrl+c quit"

const mapHelpLine = "arrows move marker • l live location • enter confirm • esc close"

type slotKind int

const (
	slotField slotKind = iota
	slotMemberName
	slotMemberAge
	slotMemberIdentifier
)

// slot is one editable input on screen.
type slot struct {
	kind        slotKind
	key         string
	memberID    int
	label       string
	placeholder string
	value       string
	required    bool
}

func (s slot) edit(value string) controller.Event {
	switch s.kind {
	case slotMemberName:
		return controller.MemberNameChanged{ID: s.memberID, Value: value}
	case slotMemberAge:
		return controller.MemberAgeChanged{ID: s.memberID, Value: value}
	case slotMemberIdentifier:
		return controller.MemberIdentifierChanged{ID: s.memberID, Value: value}
	default:
		return controller.FieldInput{Name: s.key, Value: value}
	}
}

func slotsOf(v controller.View) []slot {
	var out []slot
	for _, f := range v.Fields {
		out = append(out, slot{
			kind:        slotField,
			key:         f.Name,
			label:       f.Label,
			placeholder: f.Placeholder,
			value:       f.Value,
			required:    f.Required,
		})
	}
	for _, m := range v.Members {
		out = append(out,
			slot{kind: slotMemberName, key: m.NameKey, memberID: m.ID, label: "Name", value: m.Name, required: true},
			slot{kind: slotMemberAge, key: m.AgeKey, memberID: m.ID, label: "Age", value: m.Age, required: true},
		)
		if m.IdentifierVisible {
			out = append(out, slot{
				kind:     slotMemberIdentifier,
				key:      m.IdentifierKey,
				memberID: m.ID,
				label:    "ID Number (Optional for 18+)",
				value:    m.Identifier,
			})
		}
	}
	return out
}

// eventMsg carries the completion event of a controller command.
type eventMsg struct {
	event controller.Event
}

type Model struct {
	ctx        context.Context
	controller *controller.Controller
	styles     Styles
	input      textinput.Model
	spinner    spinner.Model

	view     controller.View
	slots    []slot
	focus    int
	focusKey string
	width    int
}

func New(ctx context.Context, c *controller.Controller) Model {
	styles := DefaultStyles()

	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 40
	ti.PromptStyle = styles.Focused
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctx:        ctx,
		controller: c,
		styles:     styles,
		input:      ti,
		spinner:    sp,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case eventMsg:
		return m.dispatch(msg.event)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view.Map.Open {
			return m.handleMapKey(msg)
		}
		return m.handleFormKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "ctrl+a":
		next, cmd := m.dispatch(controller.AddMember{})
		if n := len(next.view.Members); n > 0 {
			next.setFocus(next.view.Members[n-1].NameKey)
		}
		return next, cmd
	case "ctrl+d":
		if s, ok := m.focused(); ok && s.memberID != 0 {
			return m.dispatch(controller.RemoveMember{ID: s.memberID})
		}
		return m, nil
	case "ctrl+l":
		return m.dispatch(controller.OpenMap{})
	case "ctrl+g":
		return m.dispatch(controller.LiveLocate{})
	case "ctrl+s":
		return m.dispatch(controller.Submit{})
	}

	s, ok := m.focused()
	if !ok {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		next, ccmd := m.dispatch(s.edit(after))
		return next, tea.Batch(cmd, ccmd)
	}
	return m, cmd
}

func (m Model) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ms := m.view.Map
	nudge := func(north, east int) (tea.Model, tea.Cmd) {
		if !ms.HasMarker {
			return m, nil
		}
		to := location.Nudge(ms.Marker, ms.Zoom, north, east)
		return m.dispatch(controller.MarkerDragged{To: to})
	}

	switch msg.String() {
	case "up", "k":
		return nudge(1, 0)
	case "down", "j":
		return nudge(-1, 0)
	case "left", "h":
		return nudge(0, -1)
	case "right":
		return nudge(0, 1)
	case "l", "ctrl+g":
		return m.dispatch(controller.LiveLocate{})
	case "enter":
		return m.dispatch(controller.ConfirmLocation{})
	case "esc":
		return m.dispatch(controller.CloseMap{})
	}
	return m, nil
}

// dispatch feeds ev to the controller and schedules any command it returns.
func (m Model) dispatch(ev controller.Event) (Model, tea.Cmd) {
	cmd := m.controller.Handle(ev)
	m.refresh()
	if cmd == nil {
		return m, nil
	}
	ctx := m.ctx
	run := func() tea.Msg {
		return eventMsg{event: cmd(ctx)}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m *Model) refresh() {
	m.view = m.controller.View()
	m.slots = slotsOf(m.view)
	if i := m.indexOf(m.focusKey); i >= 0 {
		m.focus = i
	}
	if m.focus >= len(m.slots) {
		m.focus = len(m.slots) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	m.syncInput()
}

func (m *Model) syncInput() {
	s, ok := m.focused()
	if !ok {
		m.focusKey = ""
		m.input.SetValue("")
		return
	}
	m.focusKey = s.key
	m.input.Placeholder = s.placeholder
	if m.input.Value() != s.value {
		m.input.SetValue(s.value)
		m.input.CursorEnd()
	}
}

func (m *Model) moveFocus(delta int) {
	if len(m.slots) == 0 {
		return
	}
	m.focus = (m.focus + delta + len(m.slots)) % len(m.slots)
	m.focusKey = m.slots[m.focus].key
	m.input.SetValue("")
	m.syncInput()
}

func (m *Model) setFocus(key string) {
	if i := m.indexOf(key); i >= 0 {
		m.focus = i
		m.focusKey = key
		m.input.SetValue("")
		m.syncInput()
	}
}

func (m Model) indexOf(key string) int {
	if key == "" {
		return -1
	}
	for i, s := range m.slots {
		if s.key == key {
			return i
		}
	}
	return -1
}

func (m Model) focused() (slot, bool) {
	if m.focus < 0 || m.focus >= len(m.slots) {
		return slot{}, false
	}
	return m.slots[m.focus], true
}

func (m Model) busy() bool {
	return m.view.Submitting || m.view.Map.Locating
}

func (m Model) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Title.Render("Household Data Collection"))
	b.WriteString("\n")

	b.WriteString(st.Section.Render("Respondent"))
	b.WriteString("\n")
	i := 0
	for ; i < len(m.slots) && m.slots[i].kind == slotField; i++ {
		b.WriteString(m.renderSlot(i))
		b.WriteString("\n")
	}

	b.WriteString(st.Section.Render(fmt.Sprintf("Family Members (%d)", len(m.view.Members))))
	b.WriteString("\n")
	for _, mv := range m.view.Members {
		var card strings.Builder
		card.WriteString(st.Label.Render(mv.Title))
		for ; i < len(m.slots) && m.slots[i].memberID == mv.ID; i++ {
			card.WriteString("\n")
			card.WriteString(m.renderSlot(i))
		}
		b.WriteString(st.Card.Render(card.String()))
		b.WriteString("\n")
	}

	b.WriteString(st.Section.Render(m.view.LocationStatus))
	b.WriteString("\n")
	if m.view.Map.Open {
		b.WriteString(m.renderMap())
		b.WriteString("\n")
	}

	if m.view.ValidationMessage != "" {
		b.WriteString(st.Error.Render(m.view.ValidationMessage))
		b.WriteString("\n")
	}

	button := st.Disabled.Render("Submit")
	if m.view.SubmitEnabled {
		button = st.Button.Render("Submit")
	}
	b.WriteString("\n")
	b.WriteString(button)
	if m.view.Submitting {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")

	if m.view.ResponseMessage != "" {
		b.WriteString(m.toneStyle(m.view.ResponseTone).Render(m.view.ResponseMessage))
		b.WriteString("\n")
	}

	help := helpLine
	if m.view.Map.Open {
		help = mapHelpLine
	}
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(help))
	return b.String()
}

func (m Model) renderSlot(i int) string {
	s := m.slots[i]
	st := m.styles
	label := st.Label.Render(s.label)
	if s.required {
		label += st.Required.Render(" *")
	}
	if i == m.focus && !m.view.Map.Open {
		return st.Focused.Render("▸ ") + label + "\n  " + m.input.View()
	}
	value := s.value
	if value == "" {
		value = st.Muted.Render("-")
	} else {
		value = st.Value.Render(value)
	}
	return "  " + label + ": " + value
}

func (m Model) renderMap() string {
	st := m.styles
	ms := m.view.Map
	lines := []string{st.Section.Render("Select Location")}

	advisory := st.Muted
	if ms.Advisory.IsError {
		advisory = st.Error
	}
	status := ms.Advisory.Text
	if ms.Locating {
		status = m.spinner.View() + " " + status
	}
	lines = append(lines, advisory.Render(status))

	if ms.Initialized {
		lines = append(lines,
			st.Muted.Render(fmt.Sprintf("centre %.4f, %.4f  zoom %d", ms.Center.Latitude, ms.Center.Longitude, ms.Zoom)),
			renderGrid(ms, st),
		)
	}
	return st.MapPanel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderGrid(ms controller.MapState, st Styles) string {
	const cols, rows = 31, 11
	step := location.StepDegrees(ms.Zoom)
	mc := cols/2 + int(math.Round((ms.Marker.Longitude-ms.Center.Longitude)/step))
	mr := rows/2 - int(math.Round((ms.Marker.Latitude-ms.Center.Latitude)/step))

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			switch {
			case ms.HasMarker && r == mr && c == mc:
				b.WriteString(st.Marker.Render("●"))
			case r == rows/2 && c == cols/2:
				b.WriteString("+")
			default:
				b.WriteString(st.Muted.Render("·"))
			}
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) toneStyle(t controller.Tone) lipgloss.Style {
	switch t {
	case controller.ToneError:
		return m.styles.Error
	case controller.ToneSuccess:
		return m.styles.Success
	case controller.ToneInfo:
		return m.styles.Info
	default:
		return m.styles.Muted
	}
}
