package action

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthlabs/hearth/internal/entity"
	"github.com/hearthlabs/hearth/internal/hass"
	"github.com/hearthlabs/hearth/internal/intent"
)

func ent(id string) entity.Entity {
	return entity.Entity{EntityID: id, Domain: entity.DomainOf(id), FriendlyName: id}
}

func TestResolveNumber(t *testing.T) {
	t.Run("climate temperature", func(t *testing.T) {
		call, err := Resolve(ent("climate.living_room"), intent.Intent{Kind: intent.Number, Number: 72}, Options{HVACMode: "cool"})
		require.NoError(t, err)
		assert.Equal(t, "climate", call.Domain)
		assert.Equal(t, "set_temperature", call.Service)
		assert.Equal(t, 72.0, call.Data["temperature"])
		assert.Equal(t, "cool", call.Data["hvac_mode"])
	})

	t.Run("heater entity forces heat mode", func(t *testing.T) {
		call, err := Resolve(ent("climate.space_heater"), intent.Intent{Kind: intent.Number, Number: 68}, Options{HVACMode: "cool"})
		require.NoError(t, err)
		assert.Equal(t, "heat", call.Data["hvac_mode"])
	})

	t.Run("media volume normalized", func(t *testing.T) {
		call, err := Resolve(ent("media_player.tv"), intent.Intent{Kind: intent.Number, Number: 40}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "volume_set", call.Service)
		assert.Equal(t, 0.4, call.Data["volume_level"])
	})

	t.Run("light brightness scaled", func(t *testing.T) {
		call, err := Resolve(ent("light.kitchen"), intent.Intent{Kind: intent.Number, Number: 50}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "turn_on", call.Service)
		assert.Equal(t, 127, call.Data["brightness"])
	})

	t.Run("unsupported domain", func(t *testing.T) {
		_, err := Resolve(ent("switch.heater"), intent.Intent{Kind: intent.Number, Number: 50}, Options{})
		assert.ErrorIs(t, err, ErrUnsupported)
	})
}

func TestResolveDomainGating(t *testing.T) {
	t.Run("fan speed", func(t *testing.T) {
		call, err := Resolve(ent("fan.bedroom"), intent.Intent{Kind: intent.FanSpeed, Percent: 66}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "set_percentage", call.Service)
		assert.Equal(t, 66, call.Data["percentage"])

		_, err = Resolve(ent("light.kitchen"), intent.Intent{Kind: intent.FanSpeed, Percent: 66}, Options{})
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("media transport", func(t *testing.T) {
		call, err := Resolve(ent("media_player.tv"), intent.Intent{Kind: intent.Media, Service: "media_play"}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "media_play", call.Service)

		_, err = Resolve(ent("light.kitchen"), intent.Intent{Kind: intent.Media, Service: "media_play"}, Options{})
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("volume steps", func(t *testing.T) {
		call, err := Resolve(ent("media_player.tv"), intent.Intent{Kind: intent.VolumeUp}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "volume_up", call.Service)

		call, err = Resolve(ent("media_player.tv"), intent.Intent{Kind: intent.VolumeDown}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "volume_down", call.Service)
	})
}

func TestResolveSilentNoOps(t *testing.T) {
	call, err := Resolve(ent("switch.heater"), intent.Intent{Kind: intent.Color, Color: "red"}, Options{})
	require.NoError(t, err)
	assert.Nil(t, call, "color on a non-light is ignored")

	call, err = Resolve(ent("switch.heater"), intent.Intent{Kind: intent.BrightnessUp}, Options{})
	require.NoError(t, err)
	assert.Nil(t, call, "brightness on a non-light is ignored")
}

func TestResolveBrightnessAndColor(t *testing.T) {
	call, err := Resolve(ent("light.kitchen"), intent.Intent{Kind: intent.BrightnessDown}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "turn_on", call.Service)
	assert.Equal(t, -15, call.Data["brightness_step_pct"])

	call, err = Resolve(ent("light.kitchen"), intent.Intent{Kind: intent.Color, Color: "purple"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "purple", call.Data["color_name"])
}

func TestResolveSpecialDomains(t *testing.T) {
	call, err := Resolve(ent("lock.front_door"), intent.Intent{Kind: intent.TurnOn}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "lock", call.Service)

	call, err = Resolve(ent("lock.front_door"), intent.Intent{Kind: intent.TurnOff}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "unlock", call.Service)

	call, err = Resolve(ent("scene.movie_night"), intent.Intent{Kind: intent.Scene}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "turn_on", call.Service)

	call, err = Resolve(ent("input_button.coffee"), intent.Intent{Kind: intent.Press}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "press", call.Service)

	call, err = Resolve(ent("automation.morning"), intent.Intent{Kind: intent.Trigger}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "trigger", call.Service)

	_, err = Resolve(ent("automation.morning"), intent.Intent{Kind: intent.None}, Options{})
	assert.ErrorIs(t, err, ErrNoAction)
}

func TestResolveToggleDefault(t *testing.T) {
	call, err := Resolve(ent("switch.heater"), intent.Intent{Kind: intent.Toggle}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "switch", call.Domain)
	assert.Equal(t, "toggle", call.Service)
}

func TestRunnerQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/states/sensor.outdoor_temp", r.URL.Path)
		json.NewEncoder(w).Encode(hass.State{EntityID: "sensor.outdoor_temp", State: "18.2"})
	}))
	defer srv.Close()

	reg := entity.Build([]hass.State{
		{EntityID: "sensor.outdoor_temp", Attributes: map[string]any{"friendly_name": "Outdoor Temp"}},
	})
	client := hass.NewClient(srv.URL, "tok", 2*time.Second, nil)
	runner := NewRunner(client, reg, Options{})

	out, executed, err := runner.Run(context.Background(), ent("sensor.outdoor_temp"), intent.Intent{Kind: intent.Query})
	require.NoError(t, err)
	assert.True(t, executed)
	assert.Equal(t, "Outdoor Temp: 18.2", out)
}

func TestRunnerServiceCall(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := hass.NewClient(srv.URL, "tok", 2*time.Second, nil)
	runner := NewRunner(client, entity.Build(nil), Options{})

	out, executed, err := runner.Run(context.Background(), ent("light.kitchen"), intent.Intent{Kind: intent.TurnOn})
	require.NoError(t, err)
	assert.True(t, executed)
	assert.Empty(t, out)
	assert.Equal(t, "/api/services/light/turn_on", gotPath)
	assert.Equal(t, "light.kitchen", gotBody["entity_id"])
}

func TestRunnerNoOpDoesNotExecute(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := hass.NewClient(srv.URL, "tok", 2*time.Second, nil)
	runner := NewRunner(client, entity.Build(nil), Options{})

	// Brightness and color aimed at a non-light are swallowed: no request,
	// no output, and the caller must not report the entity as acted on.
	for _, in := range []intent.Intent{
		{Kind: intent.BrightnessUp},
		{Kind: intent.Color, Color: "red"},
	} {
		out, executed, err := runner.Run(context.Background(), ent("switch.heater"), in)
		require.NoError(t, err)
		assert.False(t, executed)
		assert.Empty(t, out)
	}
	assert.Zero(t, calls)
}
