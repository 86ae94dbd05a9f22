package summary

import (
	"errors"
	"io"

	"github.com/bnema/social-accounts-cli/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	summary application.Summary
	opts    RenderOptions
	styles  styles
	output  string
}

func newModel(summary application.Summary, opts RenderOptions) model {
	return model{
		summary: summary,
		opts:    opts,
		styles:  newStyles(),
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
		m.output = renderView(m.summary, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the account card through a headless bubbletea program.
func Render(summary application.Summary, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(summary, opts),
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
