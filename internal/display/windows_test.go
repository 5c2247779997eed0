package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/coregraphics/cgtest"
)

func TestListWindows(t *testing.T) {
	fake := cgtest.New().Install(t)
	fake.Windows = []cg.WindowInfo{
		{Number: 40, OwnerName: "Dock", Layer: 20, OnScreen: true},
		{Number: 41, OwnerName: "Terminal", Name: "zsh", Bounds: rect(10, 20, 800, 600), Alpha: 1, OnScreen: true, SharingState: cg.SharingReadOnly, MemoryUsage: 2048},
		{Number: 42, OwnerName: "terminal helper"},
	}

	all, err := ListWindows(WindowQuery{Option: cg.WindowListOptionAll})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := ListWindows(WindowQuery{
		Option:     cg.WindowListOptionOnScreenBelowWindow,
		RelativeTo: 40,
		Owner:      "TERMINAL",
	})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, cg.WindowID(41), filtered[0].Number)

	assert.Equal(t, []cgtest.WindowQuery{
		{Option: cg.WindowListOptionAll},
		{Option: cg.WindowListOptionOnScreenBelowWindow, RelativeTo: 40},
	}, fake.WindowCalls)
	assert.Equal(t, 0, fake.Live())
	assert.Equal(t, 0, fake.OverReleases())

	w := NewWindow(filtered[0])
	assert.Equal(t, Window{
		ID: 41, Owner: "Terminal", Name: "zsh",
		X: 10, Y: 20, Width: 800, Height: 600,
		Alpha: 1, OnScreen: true, Sharing: "read-only", Memory: 2048,
	}, w)
}

func TestListWindowsNull(t *testing.T) {
	cgtest.New().Install(t)

	_, err := ListWindows(WindowQuery{})
	assert.ErrorIs(t, err, ErrNoWindowList)
	assert.NotNil(t, Windows(nil))
}
