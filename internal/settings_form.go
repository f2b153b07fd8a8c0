package internal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"boxbreath/internal/breath"
	"boxbreath/internal/settings"
)

type formField int

const (
	fieldIn formField = iota
	fieldHoldIn
	fieldOut
	fieldHoldOut
	fieldColor
	fieldHideTimer
	numFields
)

// numInputs counts the fields backed by a text input; the last field is a
// checkbox.
const numInputs = int(fieldHideTimer)

var fieldDescriptions = [numFields]string{
	"Breathe in (seconds)",
	"Hold after breathing in (seconds)",
	"Breathe out (seconds)",
	"Hold after breathing out (seconds)",
	"Color",
	"Hide timer",
}

var fieldHints = [numFields]string{
	"",
	"",
	"",
	"",
	"any CSS color: red, #4fb3bf, rgb(), hsl()",
	"",
}

// settingsForm is the description / input / note layout of the settings
// panel. Enter applies the focused field to the controller.
type settingsForm struct {
	inputs [numInputs]textinput.Model
	focus  formField
	notes  [numFields]string
	errs   [numFields]bool
}

func newSettingsForm(cfg breath.Config) settingsForm {
	var f settingsForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 48
		ti.Width = 28
		f.inputs[i] = ti
	}
	f.setPlaceholders(cfg)
	f.inputs[fieldIn].Focus()
	return f
}

func (f *settingsForm) setPlaceholders(cfg breath.Config) {
	f.inputs[fieldIn].Placeholder = secondsText(cfg.In)
	f.inputs[fieldHoldIn].Placeholder = secondsText(cfg.HoldIn)
	f.inputs[fieldOut].Placeholder = secondsText(cfg.Out)
	f.inputs[fieldHoldOut].Placeholder = secondsText(cfg.HoldOut)
	f.inputs[fieldColor].Placeholder = cfg.Color
}

func secondsText(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

func (f *settingsForm) setFocus(next formField) tea.Cmd {
	if next < 0 {
		next = numFields - 1
	}
	if next >= numFields {
		next = 0
	}
	if int(f.focus) < numInputs {
		f.inputs[f.focus].Blur()
	}
	f.focus = next
	if int(next) < numInputs {
		return f.inputs[next].Focus()
	}
	return nil
}

func (f *settingsForm) update(msg tea.KeyMsg, ctrl Handle) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return f.setFocus(f.focus - 1)
	case "enter":
		f.submit(ctrl)
		return nil
	case " ":
		if f.focus == fieldHideTimer {
			f.submit(ctrl)
			return nil
		}
	}

	if int(f.focus) >= numInputs {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// submit validates the focused field and, when valid, hands it to the
// controller. Invalid input never reaches the controller.
func (f *settingsForm) submit(ctrl Handle) {
	field := f.focus
	if field == fieldHideTimer {
		hidden := !ctrl.TimerHidden()
		ctrl.SetTimerHidden(hidden)
		f.note(field, "", false)
		return
	}

	value := f.inputs[field].Value()
	if value == "" {
		return
	}

	if field == fieldColor {
		if err := settings.ValidateColor(value); err != nil {
			f.note(field, err.Error(), true)
			return
		}
		ctrl.SetGradientColor(value)
	} else {
		seconds, err := settings.ValidateSeconds(value)
		if err != nil {
			f.note(field, err.Error(), true)
			return
		}
		if err := durationSetter(ctrl, field)(seconds); err != nil {
			f.note(field, err.Error(), true)
			return
		}
	}

	f.inputs[field].SetValue("")
	f.setPlaceholders(ctrl.Config())
	f.note(field, fmt.Sprintf("set to %s", value), false)
}

func durationSetter(ctrl Handle, field formField) func(float64) error {
	switch field {
	case fieldHoldIn:
		return ctrl.SetHoldInDuration
	case fieldOut:
		return ctrl.SetOutDuration
	case fieldHoldOut:
		return ctrl.SetHoldOutDuration
	default:
		return ctrl.SetInDuration
	}
}

func (f *settingsForm) note(field formField, text string, isErr bool) {
	f.notes[field] = text
	f.errs[field] = isErr
}
