package status

import (
	"errors"
	"io"

	"github.com/bnema/refocus-cli/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	status       application.BlockingStatus
	blockedSites []string
	opts         RenderOptions
	styles       styles
	output       string
}

func newModel(status application.BlockingStatus, blockedSites []string, opts RenderOptions) model {
	return model{
		status:       status,
		blockedSites: blockedSites,
		opts:         opts,
		styles:       newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.status, m.blockedSites, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the session status once through a headless program and
// returns the resulting text.
func Render(status application.BlockingStatus, blockedSites []string, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(status, blockedSites, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
