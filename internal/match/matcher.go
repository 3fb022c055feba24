// Package match scores free-text device phrases against the entity registry
// using string similarity plus domain bias, and resolves ambiguous short
// commands toward queryable domains.
package match

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/hearthlabs/hearth/internal/entity"
	"github.com/hearthlabs/hearth/internal/intent"
)

// Thresholds tune the matcher. Zero values are not meaningful; use
// DefaultThresholds or fill from config.
type Thresholds struct {
	Base             int     // minimum score for a normal match
	Ambiguous        int     // minimum score for short-command candidates
	DomainBonus      int     // bonus for preferred domains on short commands
	CompetitiveRatio float64 // preferred candidate must reach this share of the top score
	ShortWords       int     // max words for a command to count as short
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Base:             50,
		Ambiguous:        70,
		DomainBonus:      30,
		CompetitiveRatio: 0.85,
		ShortWords:       1,
	}
}

// PreferredQueryDomains are favored when a short ambiguous command matches
// several entities: a one-word command is more often a question than an order.
var PreferredQueryDomains = []string{"input_select", "sensor"}

// Candidate is a scored entity match.
type Candidate struct {
	EntityID string
	Score    float64
}

// Matcher finds entities for free-text input.
type Matcher struct {
	reg         *entity.Registry
	th          Thresholds
	colorLights []string
}

// New creates a matcher over the given registry. colorLights are the entity
// IDs a bare color word should address; nil disables that shortcut.
func New(reg *entity.Registry, th Thresholds, colorLights []string) *Matcher {
	return &Matcher{reg: reg, th: th, colorLights: colorLights}
}

var (
	partSplitRe = regexp.MustCompile(`\s+and\s+|,\s*`)
	digitRe     = regexp.MustCompile(`\d`)
)

var (
	tempWords   = []string{"heat", "heater", "thermostat", "ac", "air conditioner", "air con"}
	lightWords  = []string{"%", "bright", "dim", "color", "red", "blue", "green", "yellow", "white"}
	mediaWords  = []string{"play", "pause", "next", "previous", "prev", "stop"}
	volumeWords = []string{"volume", "vol"}
)

// hints capture which device category the phrasing points at.
type hints struct {
	light bool
	media bool
	fan   bool
	temp  bool
}

// IsShort reports whether input is short enough for ambiguity handling.
func (m *Matcher) IsShort(input string) bool {
	return len(strings.Fields(input)) <= m.th.ShortWords
}

// Find scores the input against every registry entry and returns candidates
// sorted by score descending. Multi-device input ("lights and fan") yields
// the best match per phrase; short single-word input yields every candidate
// above the ambiguous threshold. Returns nil when nothing matches.
func (m *Matcher) Find(input string) []Candidate {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return nil
	}

	// A bare color word addresses the configured color lights directly.
	if len(m.colorLights) > 0 && slices.Contains(intent.Colors, in) {
		out := make([]Candidate, 0, len(m.colorLights))
		for _, id := range m.colorLights {
			out = append(out, Candidate{EntityID: id, Score: 100})
		}
		return out
	}

	// Temperature commands (a number plus a heating/cooling word) only ever
	// target climate entities.
	isTemp := digitRe.MatchString(in) && containsAny(in, tempWords)

	parts := partSplitRe.Split(in, -1)
	shortAmbiguous := len(parts) == 1 && m.IsShort(parts[0])

	entries := m.reg.All()

	var found []Candidate
	seen := make(map[string]bool)

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		h := hints{
			light: containsAny(part, lightWords),
			media: containsAny(part, mediaWords) || containsAny(part, volumeWords),
			fan:   strings.Contains(part, "fan") && containsAnySpeed(part),
			temp:  isTemp,
		}

		var potentials []Candidate
		for _, named := range entries {
			if isTemp && named.Domain != "climate" {
				continue
			}
			score := m.score(part, named, h, shortAmbiguous)
			if score > 0 {
				potentials = append(potentials, Candidate{EntityID: named.EntityID, Score: score})
			}
		}
		sort.Slice(potentials, func(i, j int) bool { return potentials[i].Score > potentials[j].Score })

		if shortAmbiguous {
			for _, c := range potentials {
				if c.Score < float64(m.th.Ambiguous) {
					break
				}
				if !seen[c.EntityID] {
					seen[c.EntityID] = true
					found = append(found, c)
				}
			}
			continue
		}

		if len(potentials) > 0 && potentials[0].Score > float64(m.th.Base) {
			best := potentials[0]
			if !seen[best.EntityID] {
				seen[best.EntityID] = true
				found = append(found, best)
			}
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Score > found[j].Score })
	return found
}

// score combines three similarity ratios with category and ambiguity bias.
func (m *Matcher) score(part string, named entity.Named, h hints, shortAmbiguous bool) float64 {
	name := named.Name
	s := float64(fuzzy.TokenSetRatio(part, name)+fuzzy.TokenSortRatio(part, name)+fuzzy.PartialRatio(part, name)) / 3

	if strings.Contains(name, part) {
		s += 10
	}
	if shortAmbiguous && slices.Contains(PreferredQueryDomains, named.Domain) {
		s += float64(m.th.DomainBonus)
	}

	switch {
	case h.temp:
		if named.Domain == "climate" {
			s += 200
		} else {
			s = 0
		}
	case h.media:
		if named.Domain == "media_player" {
			s += 100
		} else {
			s -= 50
		}
	case h.fan:
		if named.Domain == "fan" {
			s += 100
		} else {
			s -= 50
		}
	case h.light:
		if named.Domain == "light" {
			s += 60
		} else if named.Domain == "group" {
			s -= 40
		}
	default:
		if named.Domain == "light" || named.Domain == "switch" {
			s += 40
		}
	}

	return s
}

// ResolvePreferred narrows an ambiguous candidate list: when a preferred
// query-domain candidate scores within ratio of the top score, it wins over
// the top match. Candidates must be sorted by score descending.
func ResolvePreferred(cands []Candidate, ratio float64) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}

	top := cands[0]
	var preferred Candidate
	havePreferred := false

	for _, c := range cands {
		if !slices.Contains(PreferredQueryDomains, entity.DomainOf(c.EntityID)) {
			continue
		}
		if c.Score >= top.Score*ratio && c.Score > preferred.Score {
			preferred = c
			havePreferred = true
		}
	}

	if havePreferred {
		return preferred, true
	}
	return top, true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func containsAnySpeed(s string) bool {
	for speed := range intent.FanSpeeds {
		if strings.Contains(s, speed) {
			return true
		}
	}
	return false
}
