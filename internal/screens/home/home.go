package home

import (
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/seqgarden/internal/progression"
	"github.com/abhisek/seqgarden/internal/router"
	"github.com/abhisek/seqgarden/internal/screen"
	"github.com/abhisek/seqgarden/internal/screens/garden"
	"github.com/abhisek/seqgarden/internal/screens/info"
	sess "github.com/abhisek/seqgarden/internal/session"
	"github.com/abhisek/seqgarden/internal/store"
	"github.com/abhisek/seqgarden/internal/ui/components"
	"github.com/abhisek/seqgarden/internal/ui/theme"
)

const banner = `  ✿  s e q g a r d e n  ✿`

// Options carries what the tier menu needs to start playing.
type Options struct {
	Generator *progression.Generator
	EventRepo store.EventRepo
	Logger    *slog.Logger

	// SessionOptions are passed to session.New, for tests.
	SessionOptions []sess.Option
}

// HomeScreen is the tier picker. It owns the session, so picking another
// tier later continues the same session at level 1.
type HomeScreen struct {
	opts   Options
	table  *progression.TierTable
	menu   components.Menu
	sess   *sess.Session
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Generator == nil {
		opts.Generator = progression.NewGenerator(nil, nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	h := &HomeScreen{opts: opts, table: opts.Generator.Table()}

	var items []components.MenuItem
	for _, cfg := range h.table.Tiers {
		tier := cfg.Tier
		items = append(items, components.MenuItem{
			Label:       strings.ToUpper(cfg.Label),
			Description: cfg.Description,
			Action:      func() tea.Cmd { return h.Start(tier) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "HOW TO PLAY", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: info.New(h.table)} }
		}},
		components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)
	return h
}

// Start begins (or continues) the session at level 1 of tier and opens
// the garden.
func (h *HomeScreen) Start(tier progression.Tier) tea.Cmd {
	h.errMsg = ""
	if h.sess == nil {
		opts := append([]sess.Option{
			sess.WithEventRepo(h.opts.EventRepo),
			sess.WithLogger(h.opts.Logger),
		}, h.opts.SessionOptions...)
		s, err := sess.New(h.opts.Generator, tier, opts...)
		if err != nil {
			h.errMsg = err.Error()
			return nil
		}
		h.sess = s
		h.opts.Logger.Info("session started", "session", s.ID(), "tier", string(tier))
	} else if err := h.sess.ChangeTier(tier); err != nil {
		h.errMsg = err.Error()
		return nil
	}

	g := garden.New(h.sess, h.table, h.opts.EventRepo)
	return func() tea.Msg { return router.PushScreenMsg{Screen: g} }
}

// Session returns the running session, or nil before the first pick.
func (h *HomeScreen) Session() *sess.Session {
	return h.sess
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(banner)

	subtitle := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Pick a tier to start planting!")

	sections := []string{title, subtitle, h.menu.View()}
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(h.errMsg))
	}

	return components.GardenFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
