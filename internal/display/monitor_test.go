package display

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/coregraphics/cgtest"
)

func rect(x, y, w, h float64) cg.Rect {
	return cg.Rect{Origin: cg.Point{X: x, Y: y}, Size: cg.Size{Width: w, Height: h}}
}

// dualSetup installs a built-in retina panel as main and an external
// monitor to its left.
func dualSetup(t *testing.T) *cgtest.Backend {
	t.Helper()
	fake := cgtest.New().Install(t)
	fake.AddDisplay(&cgtest.Display{
		ID:         1,
		Bounds:     rect(0, 0, 1512, 982),
		Flags:      map[cg.Flag]bool{cg.FlagBuiltin: true},
		ScreenSize: cg.Size{Width: 302, Height: 196},
		PixelsWide: 1512,
		PixelsHigh: 982,
		Mode:       &cgtest.ModeSpec{Width: 1512, Height: 982, PixelWidth: 3024, PixelHeight: 1964, RefreshRate: 120, IODisplayModeID: 5},
		Modes: []cgtest.ModeSpec{
			{Width: 1512, Height: 982, PixelWidth: 3024, PixelHeight: 1964, RefreshRate: 120, IODisplayModeID: 5},
			{Width: 1800, Height: 1169, PixelWidth: 3600, PixelHeight: 2338, RefreshRate: 120, IODisplayModeID: 6},
		},
	})
	fake.AddDisplay(&cgtest.Display{
		ID:         2,
		Bounds:     rect(-2560, -200, 2560, 1440),
		PixelsWide: 2560,
		PixelsHigh: 1440,
		Attributes: map[cg.Attribute]uint32{cg.AttributeVendorNumber: 0x10ac},
	})
	return fake
}

func TestNew(t *testing.T) {
	fake := dualSetup(t)

	d, err := New(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Monitors(), 2)

	builtin := d.Monitors()[0]
	assert.Equal(t, "Built-in", builtin.Name)
	assert.True(t, builtin.Main)
	assert.True(t, builtin.Builtin)
	assert.True(t, builtin.Online)
	assert.Equal(t, 3024, builtin.PixelWidth)
	assert.Equal(t, 2.0, builtin.Scale)
	assert.Equal(t, 120.0, builtin.RefreshRate)
	assert.Equal(t, 302.0, builtin.PhysicalWidth)
	assert.Equal(t, "1512x982 (3024x1964)", builtin.Resolution())

	external := d.Monitors()[1]
	assert.Equal(t, "Display 2", external.Name)
	assert.False(t, external.Main)
	assert.Equal(t, 1.0, external.Scale)
	assert.Zero(t, external.RefreshRate)
	assert.Equal(t, 2560, external.PixelWidth)
	assert.Equal(t, uint32(0x10ac), external.Vendor)
	assert.Equal(t, "2560x1440", external.Resolution())

	// the mode copied for the built-in panel was released
	assert.Equal(t, 0, fake.Live())
}

func TestNewPropagatesListError(t *testing.T) {
	fake := dualSetup(t)
	fake.Codes[cgtest.CallActiveDisplayList] = int32(cg.ErrorInvalidConnection)

	_, err := New(context.Background())
	require.Error(t, err)
	var cgErr cg.Error
	require.True(t, errors.As(err, &cgErr))
	assert.Equal(t, cg.ErrorInvalidConnection, cgErr)
}

func TestNewCancelled(t *testing.T) {
	dualSetup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewOnlineAndAt(t *testing.T) {
	fake := dualSetup(t)
	fake.AddDisplay(&cgtest.Display{ID: 9, Bounds: rect(1512, 0, 800, 600), Flags: map[cg.Flag]bool{cg.FlagAsleep: true}})
	fake.Active = []cg.DisplayID{1, 2}

	active, err := New(context.Background())
	require.NoError(t, err)
	assert.Len(t, active.Monitors(), 2)

	online, err := NewOnline(context.Background())
	require.NoError(t, err)
	require.Len(t, online.Monitors(), 3)
	assert.True(t, online.ByID(9).Asleep)

	at, err := NewAt(context.Background(), cg.Point{X: -10, Y: 0})
	require.NoError(t, err)
	require.Len(t, at.Monitors(), 1)
	assert.Equal(t, cg.DisplayID(2), at.Monitors()[0].ID)

	none, err := NewAt(context.Background(), cg.Point{X: 99999, Y: 99999})
	require.NoError(t, err)
	assert.Empty(t, none.Monitors())

	fake.Codes[cgtest.CallDisplaysWithPoint] = int32(cg.ErrorIllegalArgument)
	_, err = NewAt(context.Background(), cg.Point{})
	assert.ErrorIs(t, err, cg.ErrorIllegalArgument)
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		name     string
		monitors []*Monitor
		want     cg.DisplayID
	}{
		{"main flag wins", []*Monitor{{ID: 1}, {ID: 2, Main: true}}, 2},
		{"falls back to first", []*Monitor{{ID: 4}, {ID: 5}}, 4},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromMonitors(tt.monitors).Primary()
			if tt.want == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestMonitorAtAndToLocal(t *testing.T) {
	d := FromMonitors([]*Monitor{
		{ID: 1, X: 0, Y: 0, Width: 1920, Height: 1080},
		{ID: 2, X: -1280, Y: 0, Width: 1280, Height: 1024},
	})

	tests := []struct {
		name  string
		point cg.Point
		want  cg.DisplayID
		local cg.Point
	}{
		{"origin", cg.Point{X: 0, Y: 0}, 1, cg.Point{X: 0, Y: 0}},
		{"inside main", cg.Point{X: 100, Y: 200}, 1, cg.Point{X: 100, Y: 200}},
		{"left display", cg.Point{X: -1, Y: 10}, 2, cg.Point{X: 1279, Y: 10}},
		{"right edge is exclusive", cg.Point{X: 1920, Y: 0}, 0, cg.Point{}},
		{"below left display", cg.Point{X: -10, Y: 1050}, 0, cg.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, local, ok := d.ToLocal(tt.point)
			if tt.want == 0 {
				assert.False(t, ok)
				assert.Nil(t, m)
				assert.Nil(t, d.MonitorAt(tt.point))
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, m.ID)
			assert.Equal(t, tt.local, local)
			assert.Equal(t, m, d.MonitorAt(tt.point))
		})
	}
}

func TestVirtualBounds(t *testing.T) {
	assert.Equal(t, cg.Rect{}, FromMonitors(nil).VirtualBounds())

	d := FromMonitors([]*Monitor{
		{ID: 1, Width: 1920, Height: 1080},
		{ID: 2, X: 1920, Y: -360, Width: 2560, Height: 1440},
		{ID: 3, X: -1280, Y: 200, Width: 1280, Height: 1024},
	})
	assert.Equal(t, rect(-1280, -360, 5760, 1584), d.VirtualBounds())
}

func TestResolve(t *testing.T) {
	d := FromMonitors([]*Monitor{{ID: 7}, {ID: 69733382, Main: true}})

	tests := []struct {
		sel     string
		want    cg.DisplayID
		wantErr error
	}{
		{"", 69733382, nil},
		{"main", 69733382, nil},
		{" MAIN ", 69733382, nil},
		{"7", 7, nil},
		{"8", 0, ErrUnknownDisplay},
		{"left", 0, ErrUnknownDisplay},
	}

	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			m, err := d.Resolve(tt.sel)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.ID)
		})
	}

	_, err := FromMonitors(nil).Resolve("main")
	assert.ErrorIs(t, err, ErrNoDisplays)
}

func TestModes(t *testing.T) {
	fake := dualSetup(t)

	current, ok := CurrentMode(cg.NewDisplay(1))
	require.True(t, ok)
	assert.True(t, current.Current)
	assert.Equal(t, "1512x982 (3024x1964) @ 120Hz", current.String())

	modes, ok := AllModes(cg.NewDisplay(1))
	require.True(t, ok)
	require.Len(t, modes, 2)
	assert.True(t, modes[0].Current)
	assert.False(t, modes[1].Current)
	assert.Equal(t, 1800, modes[1].Width)

	_, ok = CurrentMode(cg.NewDisplay(2))
	assert.False(t, ok)
	_, ok = AllModes(cg.NewDisplay(2))
	assert.False(t, ok)

	assert.Equal(t, 0, fake.Live())
	assert.Equal(t, 0, fake.OverReleases())
}

func TestEncode(t *testing.T) {
	d := FromMonitors([]*Monitor{{ID: 3, Name: "Display 3", Width: 800, Height: 600, Scale: 1}})
	inv := d.Inventory()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "json", inv))
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, 800.0, fromJSON["virtual"].(map[string]any)["width"])
	assert.NotContains(t, buf.String(), "mirror_of")

	buf.Reset()
	require.NoError(t, Encode(&buf, "yaml", inv))
	var fromYAML Inventory
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	require.Len(t, fromYAML.Monitors, 1)
	assert.Equal(t, "Display 3", fromYAML.Monitors[0].Name)

	assert.Error(t, Encode(&buf, "table", inv))
}

func TestEmptyInventoryEncodesList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "json", FromMonitors(nil).Inventory()))
	assert.Contains(t, buf.String(), `"monitors": []`)
}
