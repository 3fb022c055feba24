package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthlabs/hearth/internal/entity"
	"github.com/hearthlabs/hearth/internal/hass"
)

func testRegistry() *entity.Registry {
	return entity.Build([]hass.State{
		{EntityID: "light.kitchen", Attributes: map[string]any{"friendly_name": "Kitchen Light"}},
		{EntityID: "sensor.kitchen", Attributes: map[string]any{"friendly_name": "Kitchen Sensor"}},
		{EntityID: "fan.bedroom", Attributes: map[string]any{"friendly_name": "Bedroom Fan"}},
		{EntityID: "media_player.living_room", Attributes: map[string]any{"friendly_name": "Living Room TV"}},
		{EntityID: "climate.thermostat", Attributes: map[string]any{"friendly_name": "Thermostat"}},
		{EntityID: "switch.heater", Attributes: map[string]any{"friendly_name": "Space Heater"}},
	})
}

func ids(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.EntityID
	}
	return out
}

func TestFindSimpleCommand(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), nil)

	found := m.Find("turn on the kitchen light")
	require.NotEmpty(t, found)
	assert.Equal(t, "light.kitchen", found[0].EntityID)
}

func TestFindTemperatureCommandRestrictsToClimate(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), nil)

	found := m.Find("set the heat to 72")
	require.NotEmpty(t, found)
	for _, c := range found {
		assert.Equal(t, "climate", entity.DomainOf(c.EntityID))
	}
}

func TestFindMediaCommandFavorsMediaPlayer(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), nil)

	found := m.Find("pause living room tv")
	require.NotEmpty(t, found)
	assert.Equal(t, "media_player.living_room", found[0].EntityID)
}

func TestFindFanCommandFavorsFan(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), nil)

	found := m.Find("bedroom fan high")
	require.NotEmpty(t, found)
	assert.Equal(t, "fan.bedroom", found[0].EntityID)
}

func TestFindMultipleDevices(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), nil)

	found := m.Find("kitchen light and bedroom fan")
	require.Len(t, found, 2)
	assert.ElementsMatch(t, []string{"light.kitchen", "fan.bedroom"}, ids(found))
}

func TestFindShortAmbiguousCollectsCandidates(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), nil)

	found := m.Find("kitchen")
	require.GreaterOrEqual(t, len(found), 2)
	assert.Contains(t, ids(found), "light.kitchen")
	assert.Contains(t, ids(found), "sensor.kitchen")
}

func TestFindBareColorUsesColorLights(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), []string{"light.lamp_left", "light.lamp_right"})

	found := m.Find("blue")
	require.Len(t, found, 2)
	assert.Equal(t, []string{"light.lamp_left", "light.lamp_right"}, ids(found))
	assert.Equal(t, 100.0, found[0].Score)
}

func TestFindNoMatch(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), nil)

	assert.Empty(t, m.Find(""))
	// Temperature command with no climate entity in range.
	empty := New(entity.Build(nil), DefaultThresholds(), nil)
	assert.Empty(t, empty.Find("set the heat to 72"))
}

func TestIsShort(t *testing.T) {
	m := New(testRegistry(), DefaultThresholds(), nil)
	assert.True(t, m.IsShort("kitchen"))
	assert.False(t, m.IsShort("kitchen light"))
}

func TestResolvePreferred(t *testing.T) {
	t.Run("competitive sensor wins", func(t *testing.T) {
		c, ok := ResolvePreferred([]Candidate{
			{EntityID: "light.kitchen", Score: 140},
			{EntityID: "sensor.kitchen", Score: 130},
		}, 0.85)
		require.True(t, ok)
		assert.Equal(t, "sensor.kitchen", c.EntityID)
	})

	t.Run("uncompetitive sensor loses", func(t *testing.T) {
		c, ok := ResolvePreferred([]Candidate{
			{EntityID: "light.kitchen", Score: 140},
			{EntityID: "sensor.kitchen", Score: 100},
		}, 0.85)
		require.True(t, ok)
		assert.Equal(t, "light.kitchen", c.EntityID)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, ok := ResolvePreferred(nil, 0.85)
		assert.False(t, ok)
	})
}
