package headless

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

func TestUpdate_quitsAfterMaxFrames(t *testing.T) {
	b := New(3, SnapshotConfig{})
	require.NoError(t, b.Init(backend.Config{}))
	frame := video.NewFrameBuffer()

	for i := 0; i < 2; i++ {
		events, err := b.Update(frame, false)
		require.NoError(t, err)
		assert.Empty(t, events)
	}

	events, err := b.Update(frame, false)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, action.EmulatorQuit, events[0].Action)
	assert.Equal(t, event.Press, events[0].Type)
}

func TestUpdate_writesSnapshots(t *testing.T) {
	dir := t.TempDir()
	b := New(2, SnapshotConfig{Enabled: true, Interval: 1, Directory: dir, ROMName: "test"})
	require.NoError(t, b.Init(backend.Config{}))

	frame := video.NewFrameBuffer()
	frame.FlipPixel(0, 0)

	_, err := b.Update(frame, false)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "test_frame_1.txt"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1+frame.Height(), "header plus one line per pixel row")
	assert.True(t, strings.HasPrefix(lines[1], "█·"))
}

func TestCreateSnapshotConfig(t *testing.T) {
	dir := t.TempDir()
	config, err := CreateSnapshotConfig(5, dir, "/roms/pong.ch8")
	require.NoError(t, err)

	assert.True(t, config.Enabled)
	assert.Equal(t, 5, config.Interval)
	assert.Equal(t, dir, config.Directory)
	assert.Equal(t, "pong", config.ROMName)

	config, err = CreateSnapshotConfig(0, "", "")
	require.NoError(t, err)
	assert.False(t, config.Enabled)
}
