package console

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xraysim/internal/physics"
)

func TestKeyFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Key
	}{
		{name: "right", ev: tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), want: KeyCurrentUp},
		{name: "left", ev: tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), want: KeyCurrentDown},
		{name: "up", ev: tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), want: KeyVoltageUp},
		{name: "down", ev: tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), want: KeyVoltageDown},
		{name: "l", ev: tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), want: KeyCurrentUpFine},
		{name: "h", ev: tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), want: KeyCurrentDownFine},
		{name: "k", ev: tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), want: KeyVoltageUpFine},
		{name: "j", ev: tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), want: KeyVoltageDownFine},
		{name: "reset", ev: tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), want: KeyReset},
		{name: "save", ev: tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), want: KeySave},
		{name: "quit", ev: tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), want: KeyQuit},
		{name: "ctrl-c", ev: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), want: KeyQuit},
		{name: "unbound rune", ev: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), want: KeyNone},
		{name: "unbound key", ev: tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), want: KeyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFromEvent(tt.ev))
		})
	}
}

func TestControlsApply(t *testing.T) {
	tests := []struct {
		name string
		from Controls
		key  Key
		want Controls
	}{
		{name: "coarse current up", from: DefaultControls(), key: KeyCurrentUp, want: Controls{210, 70}},
		{name: "fine current down", from: DefaultControls(), key: KeyCurrentDownFine, want: Controls{199, 70}},
		{name: "coarse voltage up", from: DefaultControls(), key: KeyVoltageUp, want: Controls{200, 75}},
		{name: "fine voltage down", from: DefaultControls(), key: KeyVoltageDownFine, want: Controls{200, 69}},
		{name: "current clamps high", from: Controls{495, 70}, key: KeyCurrentUp, want: Controls{500, 70}},
		{name: "current clamps low", from: Controls{15, 70}, key: KeyCurrentDown, want: Controls{10, 70}},
		{name: "voltage clamps high", from: Controls{200, 118}, key: KeyVoltageUp, want: Controls{200, 120}},
		{name: "voltage clamps low", from: Controls{200, 40}, key: KeyVoltageDownFine, want: Controls{200, 40}},
		{name: "non slider key", from: Controls{300, 90}, key: KeySave, want: Controls{300, 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Apply(tt.key))
		})
	}
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "mA: 200 kVp: 70 Size: 256x256", StatusLine(DefaultControls(), 256, 256))
	assert.Equal(t, "mA: 11 kVp: 120 Size: 64x32", StatusLine(Controls{10.6, 120}, 64, 32))
}

func TestPreviewSize(t *testing.T) {
	tests := []struct {
		name                   string
		cols, rows, imgW, imgH int
		wantW, wantH           int
	}{
		{name: "width bound", cols: 40, rows: 100, imgW: 256, imgH: 256, wantW: 40, wantH: 20},
		{name: "height bound", cols: 200, rows: 20, imgW: 256, imgH: 256, wantW: 40, wantH: 20},
		{name: "wide image", cols: 80, rows: 40, imgW: 512, imgH: 128, wantW: 80, wantH: 10},
		{name: "tiny terminal", cols: 1, rows: 1, imgW: 256, imgH: 256, wantW: 1, wantH: 1},
		{name: "no room", cols: 80, rows: 0, imgW: 256, imgH: 256, wantW: 0, wantH: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := PreviewSize(tt.cols, tt.rows, tt.imgW, tt.imgH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestPreview(t *testing.T) {
	t.Run("dark image", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 16, 16))
		out := Preview(img, 8, 4)

		require.Len(t, out, 4)
		for _, l := range out {
			assert.Equal(t, strings.Repeat(" ", 8), string(l))
		}
	})

	t.Run("bright half", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 64, 8))
		for y := 0; y < 8; y++ {
			for x := 32; x < 64; x++ {
				img.Pix[y*img.Stride+x] = 255
			}
		}
		out := Preview(img, 16, 2)

		require.Len(t, out, 2)
		for _, l := range out {
			require.Len(t, l, 16)
			assert.Equal(t, ' ', l[0])
			assert.Contains(t, []rune("%@"), l[15])
		}
	})

	t.Run("nothing to draw", func(t *testing.T) {
		assert.Empty(t, Preview(nil, 10, 10))
		assert.Empty(t, Preview(image.NewGray(image.Rect(0, 0, 4, 4)), 0, 3))
	})
}

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(120, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestSession(t *testing.T) (*Session, tcell.SimulationScreen, string) {
	t.Helper()
	screen := newTestScreen(t)
	path := filepath.Join(t.TempDir(), "out.png")
	s := NewSession(physics.NewCalculator(physics.DefaultParams()), screen, SessionConfig{
		Width:    32,
		Height:   24,
		SavePath: path,
		Delay:    5 * time.Millisecond,
	})
	return s, screen, path
}

// screenText returns the shown screen contents, one string per row.
func screenText(screen tcell.SimulationScreen) []string {
	cells, w, h := screen.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		line := make([]rune, w)
		for x := 0; x < w; x++ {
			line[x] = ' '
			if rs := cells[y*w+x].Runes; len(rs) > 0 {
				line[x] = rs[0]
			}
		}
		rows[y] = strings.TrimRight(string(line), " ")
	}
	return rows
}

func screenContains(screen tcell.SimulationScreen, s string) bool {
	for _, row := range screenText(screen) {
		if strings.Contains(row, s) {
			return true
		}
	}
	return false
}

func TestSession_Render(t *testing.T) {
	s, screen, _ := newTestSession(t)
	s.Render()

	// 120x30 screen leaves 27 rows for a 32x24 image: 72x27 preview
	rows := screenText(screen)
	require.Len(t, rows, 30)
	assert.Equal(t, "mA: 200 kVp: 70 Size: 32x24", rows[27])
	assert.Equal(t, helpLine, rows[28])
	assert.Empty(t, rows[29])
}

func TestSession_SaveBeforeRender(t *testing.T) {
	s, screen, path := newTestSession(t)

	assert.ErrorIs(t, s.Save(), ErrNothingToSave)

	assert.False(t, s.HandleKey(KeySave))
	assert.True(t, screenContains(screen, "nothing to save"))
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSession_Save(t *testing.T) {
	s, screen, path := newTestSession(t)
	s.Render()

	assert.False(t, s.HandleKey(KeySave))
	assert.True(t, screenContains(screen, "saved: "+path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 24), img.Bounds())
}

func TestSession_SliderKeysDebounce(t *testing.T) {
	s, screen, _ := newTestSession(t)

	for i := 0; i < 3; i++ {
		s.HandleKey(KeyCurrentUp)
	}
	assert.Equal(t, Controls{230, 70}, s.Controls())

	assert.Eventually(t, func() bool {
		return screenContains(screen, "mA: 230 kVp: 70")
	}, time.Second, 2*time.Millisecond)
}

func TestSession_Reset(t *testing.T) {
	s, screen, _ := newTestSession(t)
	s.HandleKey(KeyVoltageUp)
	s.HandleKey(KeyCurrentDownFine)

	assert.False(t, s.HandleKey(KeyReset))
	assert.Equal(t, DefaultControls(), s.Controls())
	assert.True(t, screenContains(screen, "mA: 200 kVp: 70"))
}

func runSession(s *Session) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestSession_Run(t *testing.T) {
	t.Run("keys arrive one event at a time", func(t *testing.T) {
		s, screen, _ := newTestSession(t)
		done := runSession(s)

		steps := []struct {
			key  tcell.Key
			r    rune
			want Controls
		}{
			{key: tcell.KeyRight, want: Controls{210, 70}},
			{key: tcell.KeyRight, want: Controls{220, 70}},
			{key: tcell.KeyUp, want: Controls{220, 75}},
			{key: tcell.KeyLeft, want: Controls{210, 75}},
			{key: tcell.KeyDown, want: Controls{210, 70}},
			{key: tcell.KeyRune, r: 'l', want: Controls{211, 70}},
			{key: tcell.KeyRune, r: 'j', want: Controls{211, 69}},
		}
		for _, st := range steps {
			screen.InjectKey(st.key, st.r, tcell.ModNone)
			want := st.want
			assert.Eventually(t, func() bool { return s.Controls() == want }, time.Second, time.Millisecond)
		}
		assert.Eventually(t, func() bool {
			return screenContains(screen, "mA: 211 kVp: 69")
		}, time.Second, 2*time.Millisecond)

		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
		waitDone(t, done)
	})

	t.Run("ctrl-c quits", func(t *testing.T) {
		s, screen, _ := newTestSession(t)
		done := runSession(s)

		screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
		waitDone(t, done)
	})

	t.Run("no draw after return", func(t *testing.T) {
		s, screen, _ := newTestSession(t)
		done := runSession(s)

		screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
		waitDone(t, done)

		before := screenText(screen)
		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, before, screenText(screen))
	})

	t.Run("screen finalized", func(t *testing.T) {
		screen := tcell.NewSimulationScreen("UTF-8")
		require.NoError(t, screen.Init())
		screen.SetSize(80, 24)
		s := NewSession(physics.NewCalculator(physics.DefaultParams()), screen, SessionConfig{Width: 16, Height: 16})
		done := runSession(s)

		require.Eventually(t, func() bool {
			return screenContains(screen, "mA: 200 kVp: 70")
		}, time.Second, 2*time.Millisecond)
		screen.Fini()
		waitDone(t, done)
	})
}
