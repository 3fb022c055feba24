// Package action turns a matched entity plus a classified intent into a
// single Home Assistant service call and executes it.
package action

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hearthlabs/hearth/internal/entity"
	"github.com/hearthlabs/hearth/internal/hass"
	"github.com/hearthlabs/hearth/internal/intent"
)

// ErrUnsupported is returned when an intent cannot apply to the entity's domain.
var ErrUnsupported = errors.New("action: intent not supported for entity")

// ErrNoAction is returned when the intent carries no action at all
// (automation entities with no explicit trigger).
var ErrNoAction = errors.New("action: no default action for entity")

// Call is one resolved Home Assistant service invocation.
type Call struct {
	Domain  string
	Service string
	Data    map[string]any
}

// Options carry configuration the resolution depends on.
type Options struct {
	HVACMode string // hvac_mode used with set_temperature; defaults to "heat"
}

// Resolve maps (entity, intent) to a service call. A nil Call with nil error
// means the intent is a deliberate no-op for this entity (color or brightness
// aimed at a non-light).
func Resolve(e entity.Entity, in intent.Intent, opts Options) (*Call, error) {
	if opts.HVACMode == "" {
		opts.HVACMode = "heat"
	}

	data := map[string]any{"entity_id": e.EntityID}

	switch in.Kind {
	case intent.None:
		return nil, ErrNoAction

	case intent.Number:
		switch e.Domain {
		case "climate":
			mode := opts.HVACMode
			if strings.Contains(e.EntityID, "heat") {
				mode = "heat"
			}
			data["temperature"] = in.Number
			data["hvac_mode"] = mode
			return &Call{Domain: "climate", Service: "set_temperature", Data: data}, nil
		case "media_player":
			level := in.Number
			if level > 1 {
				level /= 100
			}
			data["volume_level"] = level
			return &Call{Domain: "media_player", Service: "volume_set", Data: data}, nil
		case "light":
			data["brightness"] = int(in.Number / 100 * 255)
			return &Call{Domain: "light", Service: "turn_on", Data: data}, nil
		default:
			return nil, fmt.Errorf("%w: number for %s", ErrUnsupported, e.Domain)
		}

	case intent.FanSpeed:
		if e.Domain != "fan" {
			return nil, fmt.Errorf("%w: fan speed for %s", ErrUnsupported, e.Domain)
		}
		data["percentage"] = in.Percent
		return &Call{Domain: "fan", Service: "set_percentage", Data: data}, nil

	case intent.Media:
		if e.Domain != "media_player" {
			return nil, fmt.Errorf("%w: %s for %s", ErrUnsupported, in.Service, e.Domain)
		}
		return &Call{Domain: "media_player", Service: in.Service, Data: data}, nil

	case intent.VolumeUp, intent.VolumeDown:
		if e.Domain != "media_player" {
			return nil, fmt.Errorf("%w: volume for %s", ErrUnsupported, e.Domain)
		}
		service := "volume_up"
		if in.Kind == intent.VolumeDown {
			service = "volume_down"
		}
		return &Call{Domain: "media_player", Service: service, Data: data}, nil

	case intent.BrightnessUp, intent.BrightnessDown:
		if e.Domain != "light" {
			// Brightness words aimed at a non-light are ignored, not errors.
			return nil, nil
		}
		step := 15
		if in.Kind == intent.BrightnessDown {
			step = -15
		}
		data["brightness_step_pct"] = step
		return &Call{Domain: "light", Service: "turn_on", Data: data}, nil

	case intent.Color:
		if e.Domain != "light" {
			return nil, nil
		}
		data["color_name"] = in.Color
		return &Call{Domain: "light", Service: "turn_on", Data: data}, nil

	case intent.Press:
		if e.Domain != "input_button" {
			return nil, fmt.Errorf("%w: press for %s", ErrUnsupported, e.Domain)
		}
		return &Call{Domain: "input_button", Service: "press", Data: data}, nil

	case intent.Scene:
		if e.Domain != "scene" {
			return nil, fmt.Errorf("%w: scene activation for %s", ErrUnsupported, e.Domain)
		}
		return &Call{Domain: "scene", Service: "turn_on", Data: data}, nil

	case intent.Trigger:
		if e.Domain != "automation" {
			return nil, fmt.Errorf("%w: trigger for %s", ErrUnsupported, e.Domain)
		}
		return &Call{Domain: "automation", Service: "trigger", Data: data}, nil

	case intent.TurnOn, intent.TurnOff, intent.Toggle:
		service := string(in.Kind)
		if e.Domain == "lock" {
			// Locks speak lock/unlock, not on/off.
			switch in.Kind {
			case intent.TurnOn:
				service = "lock"
			case intent.TurnOff:
				service = "unlock"
			}
		}
		return &Call{Domain: e.Domain, Service: service, Data: data}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, in.Kind)
	}
}

// Runner executes resolved calls against the server.
type Runner struct {
	client *hass.Client
	reg    *entity.Registry
	opts   Options
}

func NewRunner(client *hass.Client, reg *entity.Registry, opts Options) *Runner {
	return &Runner{client: client, reg: reg, opts: opts}
}

// Run executes one intent against one entity. For query intents it returns
// the printable "Name: State" line; service calls return an empty string.
// The bool reports whether anything was actually executed: a false with a
// nil error is a deliberate no-op and the entity must not be reported as
// acted on.
func (r *Runner) Run(ctx context.Context, e entity.Entity, in intent.Intent) (string, bool, error) {
	if in.Kind == intent.Query {
		st, err := r.client.State(ctx, e.EntityID)
		if err != nil {
			return "", false, err
		}
		name := r.reg.DisplayName(e.EntityID)
		return fmt.Sprintf("%s: %s", titleCase(name), capitalize(st.State)), true, nil
	}

	call, err := Resolve(e, in, r.opts)
	if err != nil {
		return "", false, err
	}
	if call == nil {
		return "", false, nil
	}
	if err := r.client.CallService(ctx, call.Domain, call.Service, call.Data); err != nil {
		return "", false, err
	}
	return "", true, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
