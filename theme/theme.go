// Package theme applies the persisted display preferences (dark/light mode
// and accent color) as a concrete lipgloss style set.
package theme

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"taskflow/model"
	"taskflow/store"
)

// Accent is one palette entry. Each entry carries a color per visual mode so
// the accent stays readable on both backgrounds.
type Accent struct {
	Name  string
	Dark  lipgloss.Color // applied when dark mode is on
	Light lipgloss.Color // applied when dark mode is off
}

// Palette is the fixed accent palette, in swatch display order. Names must
// stay in sync with model.AccentNames.
var Palette = []Accent{
	{Name: "lilac", Dark: lipgloss.Color("183"), Light: lipgloss.Color("98")},
	{Name: "blue", Dark: lipgloss.Color("111"), Light: lipgloss.Color("27")},
	{Name: "green", Dark: lipgloss.Color("114"), Light: lipgloss.Color("28")},
	{Name: "amber", Dark: lipgloss.Color("214"), Light: lipgloss.Color("130")},
	{Name: "rose", Dark: lipgloss.Color("211"), Light: lipgloss.Color("161")},
	{Name: "cyan", Dark: lipgloss.Color("80"), Light: lipgloss.Color("30")},
}

func accentByName(name string) Accent {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range Palette {
		if a.Name == name {
			return a
		}
	}
	return Palette[0]
}

// Styles is the compiled style set the renderer consumes. It is rebuilt
// whenever the mode or accent changes.
type Styles struct {
	Title    lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Error    lipgloss.Style
	Banner   lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
}

// Controller mirrors the visual mode and accent color between the rendered
// interface and the persisted preferences.
type Controller struct {
	store *store.Store
	log   *log.Logger

	darkMode bool
	accent   Accent
	styles   Styles
}

// NewController creates a theme controller bound to the given store. A nil
// logger discards log output. Call Load before first render.
func NewController(st *store.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{store: st, log: logger}
	c.SetDarkMode(true)
	c.applyAccent(model.DefaultAccent)
	return c
}

// Load reads the stored preferences and applies mode and accent. It never
// writes back; persistence on load would clobber a record that only failed to
// parse this once.
func (c *Controller) Load() {
	prefs := c.store.Preferences()
	c.SetDarkMode(prefs.DarkMode)
	c.applyAccent(prefs.AccentColor)
}

// ToggleDarkMode flips the current mode, applies it and persists the choice.
func (c *Controller) ToggleDarkMode() {
	c.SetDarkMode(!c.darkMode)
	if err := c.store.UpdatePreference("darkMode", c.darkMode); err != nil {
		c.log.Error("persist dark mode", "err", err)
	}
}

// SetDarkMode applies the visual mode without persisting it; persistence is
// the caller's responsibility.
func (c *Controller) SetDarkMode(dark bool) {
	c.darkMode = dark
	c.rebuild()
}

// SetAccentColor applies the named palette entry as the active accent and
// persists the choice. Unknown names fall back to the default entry.
func (c *Controller) SetAccentColor(name string) {
	c.applyAccent(name)
	if err := c.store.UpdatePreference("accentColor", c.accent.Name); err != nil {
		c.log.Error("persist accent color", "err", err)
	}
}

func (c *Controller) applyAccent(name string) {
	c.accent = accentByName(name)
	c.rebuild()
}

// DarkMode reports the applied visual mode.
func (c *Controller) DarkMode() bool {
	return c.darkMode
}

// AccentName returns the active palette entry name.
func (c *Controller) AccentName() string {
	return c.accent.Name
}

// ModeIcon is the glyph for the mode-toggle control: sun while dark mode is
// on (pressing it brings the light), moon while it is off.
func (c *Controller) ModeIcon() string {
	if c.darkMode {
		return "☀"
	}
	return "☾"
}

// Styles returns the currently applied style set.
func (c *Controller) Styles() Styles {
	return c.styles
}

// Swatch renders one palette swatch, marked active iff it is the current
// accent.
func (c *Controller) Swatch(name string) string {
	a := accentByName(name)
	st := lipgloss.NewStyle().Foreground(c.modeColor(a))
	if a.Name == c.accent.Name {
		return st.Bold(true).Render("◉")
	}
	return st.Render("○")
}

func (c *Controller) modeColor(a Accent) lipgloss.Color {
	if c.darkMode {
		return a.Dark
	}
	return a.Light
}

func (c *Controller) rebuild() {
	accent := c.modeColor(c.accent)

	text := lipgloss.Color("235")
	muted := lipgloss.Color("245")
	faint := lipgloss.Color("250")
	errc := lipgloss.Color("160")
	if c.darkMode {
		text = lipgloss.Color("252")
		muted = lipgloss.Color("243")
		faint = lipgloss.Color("240")
		errc = lipgloss.Color("204")
	}

	c.styles = Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true).Foreground(faint),
		Error:    lipgloss.NewStyle().Foreground(errc),
		Banner:   lipgloss.NewStyle().Bold(true).Foreground(text).Background(accent).Padding(0, 1),
		Border:   lipgloss.NewStyle().Foreground(muted),
		Help:     lipgloss.NewStyle().Foreground(muted),
	}
}

// ApplyColorProfile configures lipgloss rendering for the interactive TUI.
// Only NO_COLOR (or an explicit noColor request) downgrades the profile;
// otherwise the terminal's detected capabilities win.
func ApplyColorProfile(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
