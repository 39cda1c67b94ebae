package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	lerrors "github.com/matzehuels/lamafmt/pkg/errors"
	"github.com/matzehuels/lamafmt/pkg/inspect"
	"github.com/matzehuels/lamafmt/pkg/lama"
	"github.com/matzehuels/lamafmt/pkg/layout"
	"github.com/matzehuels/lamafmt/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// widthStep is the change applied by the +/- keys.
const widthStep = 4

// analyzeFunc computes the candidate set of the explored source.
type analyzeFunc func(ctx context.Context, opts pipeline.Options) (*lama.Result, error)

// layoutMsg carries a finished layout back into the model.
type layoutMsg struct {
	width  int
	result *lama.Result
	err    error
}

// =============================================================================
// ExploreModel - Interactive candidate browser
// =============================================================================

// ExploreModel is the bubbletea model for browsing the candidate set of a
// source while changing the page width.
type ExploreModel struct {
	Name   string
	Opts   pipeline.Options
	Result *lama.Result
	Err    error
	Cursor int
	Offset int
	Height int

	ctx     context.Context
	analyze analyzeFunc
}

// NewExploreModel creates a model for the source called name. opts must be
// validated.
func NewExploreModel(ctx context.Context, name string, opts pipeline.Options, analyze analyzeFunc) ExploreModel {
	return ExploreModel{
		Name:    name,
		Opts:    opts,
		Height:  8,
		ctx:     ctx,
		analyze: analyze,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return m.relayout(m.Opts.Width)
}

// relayout returns a command computing the candidate set at width.
func (m ExploreModel) relayout(width int) tea.Cmd {
	opts := m.Opts
	opts.Width = width
	ctx, analyze := m.ctx, m.analyze
	return func() tea.Msg {
		res, err := analyze(ctx, opts)
		return layoutMsg{width: width, result: res, err: err}
	}
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.candidates()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "+", "=", "right", "l":
			if w := min(m.Opts.Width+widthStep, lerrors.MaxWidth); w != m.Opts.Width {
				return m, m.relayout(w)
			}
		case "-", "left", "h":
			if w := max(m.Opts.Width-widthStep, lerrors.MinWidth); w != m.Opts.Width {
				return m, m.relayout(w)
			}
		}
	case layoutMsg:
		m.Opts.Width = msg.width
		m.Result, m.Err = msg.result, msg.err
		m.Cursor, m.Offset = 0, 0
		if msg.err == nil {
			if best := inspect.Best(msg.result.Set); best > 0 {
				m.Cursor = best
				m.Offset = max(0, best-m.Height+1)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/3, 3)
	}
	return m, nil
}

func (m ExploreModel) candidates() int {
	if m.Result == nil {
		return 0
	}
	return m.Result.Set.Len()
}

// Selected returns the candidate under the cursor, or nil.
func (m ExploreModel) Selected() *layout.Format {
	if m.Cursor >= m.candidates() {
		return nil
	}
	return m.Result.Set.Candidates()[m.Cursor]
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  width %d · indent %d · policy %s", m.Opts.Width, m.Opts.Indent, m.Opts.Policy)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ candidate  +/- width  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.Err != nil:
		b.WriteString(listErrorStyle.Render(lerrors.UserMessage(m.Err)))
		b.WriteString("\n")
		return b.String()
	case m.Result == nil:
		b.WriteString(listDimStyle.Render("laying out..."))
		b.WriteString("\n")
		return b.String()
	}

	rows := inspect.Rows(m.Result.Set)
	end := min(m.Offset+m.Height, len(rows))
	best := inspect.Best(m.Result.Set)
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(inspect.Headers...).
		Rows(rows[m.Offset:end]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch idx := m.Offset + row; {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case idx == m.Cursor:
				return listSelectedStyle.Padding(0, 1)
			case idx == best:
				return base.Foreground(colorGreen)
			default:
				return base.Inherit(listNormalStyle)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d choices · peak %d", m.Cursor+1, len(rows),
		m.Result.Stats.Choices, m.Result.Stats.PeakCandidates)))
	b.WriteString("\n\n")

	if f := m.Selected(); f != nil {
		ruler := strings.Repeat("─", m.Opts.Width)
		b.WriteString(listDimStyle.Render(ruler))
		b.WriteString("\n")
		b.WriteString(f.Text())
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(ruler))
		b.WriteString("\n")
	}
	return b.String()
}
