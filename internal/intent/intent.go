// Package intent classifies a free-text command into one of a flat set of
// device intents using keyword and regex rules. There is no state machine:
// rules are checked in a fixed precedence order and the first hit wins, with
// a per-domain default when nothing matches.
package intent

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies what the user wants done.
type Kind string

const (
	Query          Kind = "query_state"
	Trigger        Kind = "trigger"
	FanSpeed       Kind = "fan_speed"
	Color          Kind = "color"
	Number         Kind = "number"
	VolumeUp       Kind = "volume_up"
	VolumeDown     Kind = "volume_down"
	Media          Kind = "media"
	BrightnessUp   Kind = "brightness_up"
	BrightnessDown Kind = "brightness_down"
	TurnOn         Kind = "turn_on"
	TurnOff        Kind = "turn_off"
	Toggle         Kind = "toggle"
	Press          Kind = "press"
	Scene          Kind = "activate_scene"
	None           Kind = "none"
)

// Intent is a classified command. Only the fields relevant to Kind are set.
type Intent struct {
	Kind    Kind
	Number  float64 // Number: raw value from the command
	Percent int     // FanSpeed: target percentage
	Color   string  // Color: CSS color name
	Service string  // Media: Home Assistant media_player service
}

func (i Intent) String() string {
	return string(i.Kind)
}

// mediaServices maps transport words to media_player services, in precedence
// order: "play" wins when a command carries several transport words.
var mediaServices = []struct {
	Word    string
	Service string
}{
	{"play", "media_play"},
	{"pause", "media_pause"},
	{"stop", "media_pause"},
	{"next", "media_next_track"},
	{"previous", "media_previous_track"},
	{"prev", "media_previous_track"},
}

var (
	brightnessUpWords   = []string{"increase", "raise", "up", "brighter"}
	brightnessDownWords = []string{"decrease", "lower", "down", "dim", "dimmer"}
)

// FanSpeeds maps speed words to fan percentages.
var FanSpeeds = map[string]int{
	"high":   100,
	"medium": 66,
	"low":    33,
	"off":    0,
}

// fanSpeedOrder fixes the precedence when a command names several speeds.
var fanSpeedOrder = []string{"high", "medium", "low", "off"}

// Colors are the color names the classifier and matcher recognize.
var Colors = []string{"red", "green", "blue", "yellow", "orange", "purple", "pink", "white"}

// QueryDomains default to a state query when the command carries no verb.
var QueryDomains = []string{
	"sensor", "binary_sensor", "input_select", "weather", "sun", "zone",
	"person", "calendar", "persistent_notification", "alarm_control_panel",
	"device_tracker", "image_processing", "camera", "lock",
}

// ToggleDomains default to a toggle when the command carries no verb.
var ToggleDomains = []string{
	"light", "switch", "fan", "input_boolean", "script",
	"media_player", "climate", "cover", "siren", "humidifier",
}

var numberRe = regexp.MustCompile(`(\d+)`)

// Classify maps a command to an intent. primaryDomain is the domain of the
// best-matched entity and drives the default when no keyword rule fires;
// pass "" when no entity is known.
func Classify(command, primaryDomain string) Intent {
	command = strings.ToLower(strings.TrimSpace(command))
	words := strings.Fields(command)

	hasWord := func(w string) bool { return slices.Contains(words, w) }
	anyWord := func(ws []string) bool {
		for _, w := range ws {
			if hasWord(w) {
				return true
			}
		}
		return false
	}

	for _, kw := range []string{"status", "state", "query"} {
		if strings.Contains(command, kw) {
			return Intent{Kind: Query}
		}
	}

	if hasWord("trigger") {
		return Intent{Kind: Trigger}
	}

	if strings.Contains(command, "fan") {
		for _, speed := range fanSpeedOrder {
			if hasWord(speed) {
				return Intent{Kind: FanSpeed, Percent: FanSpeeds[speed]}
			}
		}
	}

	for _, color := range Colors {
		if hasWord(color) {
			return Intent{Kind: Color, Color: color}
		}
	}

	if m := numberRe.FindString(command); m != "" {
		n, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return Intent{Kind: Number, Number: n}
		}
	}

	if hasWord("volume") || hasWord("vol") {
		switch {
		case anyWord([]string{"up", "increase", "raise", "higher"}):
			return Intent{Kind: VolumeUp}
		case anyWord([]string{"down", "decrease", "lower"}):
			return Intent{Kind: VolumeDown}
		}
	}

	for _, ms := range mediaServices {
		if hasWord(ms.Word) {
			return Intent{Kind: Media, Service: ms.Service}
		}
	}

	if anyWord(brightnessUpWords) {
		return Intent{Kind: BrightnessUp}
	}
	if anyWord(brightnessDownWords) {
		return Intent{Kind: BrightnessDown}
	}

	if hasWord("on") {
		return Intent{Kind: TurnOn}
	}
	if hasWord("off") {
		return Intent{Kind: TurnOff}
	}

	if command != "" {
		return defaultFor(primaryDomain)
	}

	return Intent{Kind: Toggle}
}

// defaultFor picks the default intent for a bare device-name command.
func defaultFor(domain string) Intent {
	switch domain {
	case "":
		return Intent{Kind: Query}
	case "automation":
		// Automations have no safe default action.
		return Intent{Kind: None}
	case "input_button":
		return Intent{Kind: Press}
	case "scene":
		return Intent{Kind: Scene}
	}

	if slices.Contains(QueryDomains, domain) {
		return Intent{Kind: Query}
	}
	if slices.Contains(ToggleDomains, domain) {
		return Intent{Kind: Toggle}
	}
	return Intent{Kind: Query}
}
