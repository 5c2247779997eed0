//go:build darwin && cgo

package coregraphics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/bnema/cgdisplay/coregraphics"
)

// requireWindowServer skips when the process has no window server session,
// as on headless CI runners.
func requireWindowServer(t *testing.T) []cg.DisplayID {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping native CoreGraphics test in short mode")
	}
	ids, err := cg.ActiveDisplays()
	if err != nil || len(ids) == 0 {
		t.Skipf("no active displays (err=%v)", err)
	}
	return ids
}

func TestNativeDisplayLists(t *testing.T) {
	ids := requireWindowServer(t)

	count, err := cg.ActiveDisplayCount()
	require.NoError(t, err)
	assert.Equal(t, int(count), len(ids))

	main := cg.MainDisplay()
	assert.Contains(t, ids, main.ID)
	assert.True(t, main.IsMain())
	assert.True(t, main.IsActive())
	assert.Equal(t, cg.Point{}, main.Bounds().Origin)

	online, err := cg.OnlineDisplays()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(online), len(ids))

	at, err := cg.DisplaysWithPoint(cg.Point{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Contains(t, at, main.ID)
}

func TestNativeModes(t *testing.T) {
	requireWindowServer(t)
	main := cg.MainDisplay()

	mode, ok := main.Mode()
	require.True(t, ok)
	defer mode.Release()
	assert.Positive(t, mode.Width())
	assert.GreaterOrEqual(t, mode.PixelWidth(), mode.Width())
	assert.GreaterOrEqual(t, mode.Scale(), 1.0)

	clone := mode.Clone()
	assert.Equal(t, mode.IODisplayModeID(), clone.IODisplayModeID())
	clone.Release()

	modes, ok := main.Modes()
	require.True(t, ok)
	require.NotEmpty(t, modes)
	for _, m := range modes {
		m.Release()
	}
}

func TestNativeWindowList(t *testing.T) {
	requireWindowServer(t)

	list, ok := cg.WindowListInfo(cg.WindowListOptionOnScreenOnly, cg.NullWindowID)
	require.True(t, ok)
	defer list.Release()

	for _, w := range list.Windows() {
		assert.NotZero(t, w.Number)
		assert.True(t, w.OnScreen)
	}
}
