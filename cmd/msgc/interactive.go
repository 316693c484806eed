package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/msgc"
	"github.com/wippyai/msgc/emit/wasmmod"
	"github.com/wippyai/msgc/layout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// chromeHeight is the number of lines around the viewport.
const chromeHeight = 6

type interactiveModel struct {
	err      error
	gen      *msgc.Generator
	result   *msgc.Result
	filename string
	name     string
	view     viewport.Model
	selected int
	ready    bool
}

type generatedMsg struct {
	err    error
	result *msgc.Result
}

func newInteractiveModel(g *msgc.Generator, filename, name string) *interactiveModel {
	return &interactiveModel{gen: g, filename: filename, name: name}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.generate
}

func (m *interactiveModel) generate() tea.Msg {
	res, err := m.gen.GenerateFile(m.filename, m.name)
	return generatedMsg{result: res, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab", "right", "l":
			if m.result != nil && len(m.result.Artifacts) > 0 {
				m.selected = (m.selected + 1) % len(m.result.Artifacts)
				m.refresh()
			}
			return m, nil

		case "shift+tab", "left", "h":
			if m.result != nil && len(m.result.Artifacts) > 0 {
				n := len(m.result.Artifacts)
				m.selected = (m.selected + n - 1) % n
				m.refresh()
			}
			return m, nil

		case "r":
			return m, m.generate
		}

	case tea.WindowSizeMsg:
		height := msg.Height - chromeHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}
		m.refresh()

	case generatedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
			if m.selected >= len(m.result.Artifacts) {
				m.selected = 0
			}
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *interactiveModel) refresh() {
	if !m.ready || m.result == nil || len(m.result.Artifacts) == 0 {
		return
	}
	a := m.result.Artifacts[m.selected]
	if a.Target == wasmmod.Target {
		m.view.SetContent(exportsView(m.result.Layout))
	} else {
		m.view.SetContent(string(a.Data))
	}
	m.view.GotoTop()
}

// exportsView lists what the binary accessor module exports.
func exportsView(info layout.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "size() -> i32 = %d\n", info.Size)
	for _, s := range info.Slots {
		fmt.Fprintf(&b, "get_%s(ptr) / set_%s(ptr, v)  @%d %s\n", s.Field.Name, s.Field.Name, s.Offset, s.Field.Type)
	}
	b.WriteString("decode(dst, src, srcLen) -> i32\n")
	b.WriteString("encode(src, dst, dstLen) -> i32\n")
	return b.String()
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "Generating..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("msgc"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.result == nil {
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		}
		b.WriteString(helpStyle.Render("r regenerate • q quit"))
		return b.String()
	}

	for i, a := range m.result.Artifacts {
		label := m.result.Message.Name + a.Suffix
		if i == m.selected {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")

	info := m.result.Layout
	summary := fmt.Sprintf("%d bytes  %s  %d fields", info.Size, info.Format(), len(info.Slots))
	if m.result.Natural.Padded() {
		summary += fmt.Sprintf("  (C sizeof %d)", m.result.Natural.Size)
	}
	b.WriteString(fieldStyle.Render(summary))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(helpStyle.Render("tab/←/→ artifact • ↑/↓ scroll • r regenerate • q quit"))
	}
	return b.String()
}

func runInteractive(g *msgc.Generator, filename, name string) error {
	p := tea.NewProgram(newInteractiveModel(g, filename, name), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
