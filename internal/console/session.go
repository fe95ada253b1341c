package console

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"xraysim/internal/debounce"
	"xraysim/internal/imaging"
	"xraysim/internal/physics"
)

// ErrNothingToSave is returned by Save before the first render.
var ErrNothingToSave = errors.New("nothing to save")

const (
	DefaultSavePath = "xray_sim.png"
	DefaultDelay    = 80 * time.Millisecond

	helpLine = "left/right: mA +-10  h/l: mA +-1  up/down: kVp +-5  j/k: kVp +-1  r: reset  s: save  q: quit"

	// status, help and message lines sit under the preview
	footerRows = 3
)

// SessionConfig configures a terminal Session. Zero values take defaults.
type SessionConfig struct {
	Width, Height int
	SavePath      string
	Delay         time.Duration
}

// Session owns the controls, the last rendered field and the screen.
// Control changes re-render through a debouncer, so draws happen both on the
// event loop and on the debouncer's goroutine; mu serializes them.
type Session struct {
	calc   *physics.Calculator
	screen tcell.Screen
	deb    *debounce.Debouncer
	cfg    SessionConfig

	mu   sync.Mutex
	ctl  Controls
	last *physics.Field
	msg  string
}

// NewSession returns a Session drawing on an initialized screen.
func NewSession(calc *physics.Calculator, screen tcell.Screen, cfg SessionConfig) *Session {
	if cfg.Width <= 0 {
		cfg.Width = 256
	}
	if cfg.Height <= 0 {
		cfg.Height = 256
	}
	if cfg.SavePath == "" {
		cfg.SavePath = DefaultSavePath
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	return &Session{
		calc:   calc,
		screen: screen,
		deb:    debounce.New(cfg.Delay),
		cfg:    cfg,
		ctl:    DefaultControls(),
	}
}

// Controls returns the current control settings.
func (s *Session) Controls() Controls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl
}

// Render computes the field for the current controls and redraws the screen.
func (s *Session) Render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	shape := physics.Shape{Height: s.cfg.Height, Width: s.cfg.Width}
	s.last = s.calc.Compute(s.ctl.Current, s.ctl.Voltage, shape, nil)
	s.msg = ""
	s.draw()
}

// HandleKey applies k and reports whether the session should end.
func (s *Session) HandleKey(k Key) bool {
	switch k {
	case KeyNone:
	case KeyQuit:
		return true
	case KeyReset:
		s.deb.Stop()
		s.mu.Lock()
		s.ctl = DefaultControls()
		s.mu.Unlock()
		s.Render()
	case KeySave:
		s.mu.Lock()
		if err := s.save(); err != nil {
			s.msg = err.Error()
		} else {
			s.msg = "saved: " + s.cfg.SavePath
		}
		s.draw()
		s.mu.Unlock()
	default:
		s.mu.Lock()
		next := s.ctl.Apply(k)
		changed := next != s.ctl
		s.ctl = next
		s.mu.Unlock()
		if changed {
			s.deb.Trigger(s.Render)
		}
	}
	return false
}

// Save writes the last rendered image to the configured path as PNG.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Session) save() error {
	if s.last == nil {
		return ErrNothingToSave
	}
	f, err := os.Create(s.cfg.SavePath)
	if err != nil {
		return fmt.Errorf("save %s: %w", s.cfg.SavePath, err)
	}
	if err := imaging.Encode(f, s.last, imaging.FormatPNG); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", s.cfg.SavePath, err)
	}
	return f.Close()
}

// Run renders once, then handles screen events until quit or until the
// screen is finalized. A pending render is cancelled and one already running
// is waited for, so nothing draws after Run returns.
func (s *Session) Run() {
	defer func() {
		s.deb.Stop()
		s.deb.Wait()
	}()

	s.Render()
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.mu.Lock()
			s.draw()
			s.mu.Unlock()
			s.screen.Sync()
		case *tcell.EventKey:
			if s.HandleKey(KeyFromEvent(ev)) {
				return
			}
		}
	}
}

// draw must be called with s.mu held.
func (s *Session) draw() {
	s.screen.Clear()
	cols, rows := s.screen.Size()

	pw, ph := PreviewSize(cols, rows-footerRows, s.cfg.Width, s.cfg.Height)
	if s.last != nil {
		for y, line := range Preview(imaging.ToGray(s.last), pw, ph) {
			for x, r := range line {
				s.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			}
		}
	}

	y := max(ph, 0)
	s.drawText(y, StatusLine(s.ctl, s.cfg.Width, s.cfg.Height))
	s.drawText(y+1, helpLine)
	s.drawText(y+2, s.msg)
	s.screen.Show()
}

func (s *Session) drawText(y int, text string) {
	cols, _ := s.screen.Size()
	for x, r := range []rune(text) {
		if x >= cols {
			return
		}
		s.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
	}
}
