package coregraphics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/coregraphics/cgtest"
)

var fullHD = cgtest.ModeSpec{
	Width:               1920,
	Height:              1080,
	PixelWidth:          3840,
	PixelHeight:         2160,
	RefreshRate:         60.0,
	IOFlags:             0x7,
	IODisplayModeID:     42,
	UsableForDesktopGUI: true,
}

func TestAdoptModeRejectsNull(t *testing.T) {
	fake := cgtest.New().Install(t)

	m, err := cg.AdoptMode(nil)
	assert.ErrorIs(t, err, cg.ErrNullHandle)
	assert.Nil(t, m)
	assert.Equal(t, 0, fake.Allocated())
}

func TestModeAccessors(t *testing.T) {
	fake := cgtest.New().Install(t)

	m, err := cg.AdoptMode(fake.NewMode(fullHD))
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, uint64(1920), m.Width())
	assert.Equal(t, uint64(1080), m.Height())
	assert.Equal(t, uint64(3840), m.PixelWidth())
	assert.Equal(t, uint64(2160), m.PixelHeight())
	assert.Equal(t, 60.0, m.RefreshRate())
	assert.Equal(t, uint32(0x7), m.IOFlags())
	assert.Equal(t, int32(42), m.IODisplayModeID())
	assert.True(t, m.IsUsableForDesktopGUI())
	assert.Equal(t, 2.0, m.Scale())
}

func TestModeScaleWithoutWidth(t *testing.T) {
	fake := cgtest.New().Install(t)

	m, err := cg.AdoptMode(fake.NewMode(cgtest.ModeSpec{PixelWidth: 100}))
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, 1.0, m.Scale())
}

func TestModeReleasedExactlyOnce(t *testing.T) {
	tests := []struct {
		name   string
		clones int
		// order lists wrapper indexes in release order; index 0 is the
		// adopted wrapper.
		order []int
	}{
		{name: "single wrapper", clones: 0, order: []int{0}},
		{name: "original released first", clones: 1, order: []int{0, 1}},
		{name: "clone released first", clones: 1, order: []int{1, 0}},
		{name: "three clones interleaved", clones: 3, order: []int{2, 0, 3, 1}},
		{name: "reverse order", clones: 3, order: []int{3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := cgtest.New().Install(t)
			ref := fake.NewMode(fullHD)

			m, err := cg.AdoptMode(ref)
			require.NoError(t, err)
			wrappers := []*cg.Mode{m}
			for i := 0; i < tt.clones; i++ {
				wrappers = append(wrappers, wrappers[i].Clone())
			}
			require.Equal(t, tt.clones+1, fake.RefCount(ref))

			for i, idx := range tt.order {
				assert.Equal(t, 0, fake.Frees(ref), "freed before the last wrapper was released")
				wrappers[idx].Release()
				assert.Equal(t, len(tt.order)-i-1, fake.RefCount(ref))
			}

			assert.Equal(t, 1, fake.Frees(ref))
			assert.Equal(t, 0, fake.OverReleases())
		})
	}
}

func TestModeReleaseIsIdempotent(t *testing.T) {
	fake := cgtest.New().Install(t)
	ref := fake.NewMode(fullHD)

	m, err := cg.AdoptMode(ref)
	require.NoError(t, err)
	clone := m.Clone()

	m.Release()
	m.Release()
	assert.Equal(t, 1, fake.RefCount(ref))
	assert.Equal(t, 0, fake.Frees(ref))

	clone.Release()
	clone.Release()
	assert.Equal(t, 1, fake.Frees(ref))
	assert.Equal(t, 0, fake.OverReleases())
}

func TestModeCloneOutlivesOriginal(t *testing.T) {
	fake := cgtest.New().Install(t)

	m, err := cg.AdoptMode(fake.NewMode(fullHD))
	require.NoError(t, err)
	clone := m.Clone()
	m.Release()

	assert.Equal(t, uint64(1920), clone.Width())
	clone.Release()
}

func TestModeUseAfterReleasePanics(t *testing.T) {
	fake := cgtest.New().Install(t)

	m, err := cg.AdoptMode(fake.NewMode(fullHD))
	require.NoError(t, err)
	m.Release()

	assert.Panics(t, func() { m.Width() })
	assert.Panics(t, func() { m.Clone() })
}

func TestDisplayMode(t *testing.T) {
	t.Run("returns the current mode", func(t *testing.T) {
		fake := cgtest.New().Install(t)
		fake.AddDisplay(&cgtest.Display{ID: 1, Mode: &fullHD})

		m, ok := cg.NewDisplay(1).Mode()
		require.True(t, ok)
		assert.Equal(t, uint64(1920), m.Width())
		assert.Equal(t, uint64(1080), m.Height())
		assert.Equal(t, 60.0, m.RefreshRate())

		m.Release()
		assert.Equal(t, 0, fake.Live())
	})

	t.Run("null mode is absent", func(t *testing.T) {
		fake := cgtest.New().Install(t)
		fake.AddDisplay(&cgtest.Display{ID: 1})

		m, ok := cg.NewDisplay(1).Mode()
		assert.False(t, ok)
		assert.Nil(t, m)
		assert.Equal(t, 0, fake.Allocated())
	})
}

func TestDisplayModes(t *testing.T) {
	t.Run("adopts every mode", func(t *testing.T) {
		fake := cgtest.New().Install(t)
		fake.AddDisplay(&cgtest.Display{
			ID: 1,
			Modes: []cgtest.ModeSpec{
				fullHD,
				{Width: 2560, Height: 1440, PixelWidth: 2560, PixelHeight: 1440, RefreshRate: 144},
			},
		})

		modes, ok := cg.NewDisplay(1).Modes()
		require.True(t, ok)
		require.Len(t, modes, 2)
		assert.Equal(t, uint64(2560), modes[1].Width())
		assert.Equal(t, 144.0, modes[1].RefreshRate())

		for _, m := range modes {
			m.Release()
		}
		assert.Equal(t, 0, fake.Live())
		assert.Equal(t, 0, fake.OverReleases())
	})

	t.Run("missing mode list is absent", func(t *testing.T) {
		cgtest.New().Install(t).AddDisplay(&cgtest.Display{ID: 1})

		modes, ok := cg.NewDisplay(1).Modes()
		assert.False(t, ok)
		assert.Nil(t, modes)
	})
}
