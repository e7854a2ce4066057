package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/classgen"
	"github.com/wippyai/classgen/assembly"
	"github.com/wippyai/classgen/descriptor"
)

type interactiveModel struct {
	err      error
	cfg      *assembly.Config
	typ      *descriptor.TypeDescription
	filename string
	methods  []*assembly.Method
	visible  []*assembly.Method
	filter   textinput.Model
	listing  viewport.Model
	selected int
	height   int
	width    int
	state    modelState
}

type modelState int

const (
	stateSelectMethod modelState = iota
	stateFilter
	stateShowListing
)

func newInteractiveModel(filename string, cfg *assembly.Config) *interactiveModel {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "method name"
	filter.Width = 40
	return &interactiveModel{
		cfg:      cfg,
		filename: filename,
		filter:   filter,
		listing:  viewport.New(80, 20),
		state:    stateSelectMethod,
	}
}

type loadedMsg struct {
	err     error
	typ     *descriptor.TypeDescription
	methods []*assembly.Method
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadRecipe
}

func (m *interactiveModel) loadRecipe() tea.Msg {
	out, err := classgen.Build(m.filename, m.cfg)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{typ: out.Plan.Type, methods: out.Methods}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.listing.Width = msg.Width
		m.listing.Height = max(msg.Height-6, 1)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.typ = msg.typ
		m.methods = msg.methods
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectMethod && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelectMethod && m.selected < len(m.visible)-1 {
				m.selected++
				return m, nil
			}

		case "/":
			if m.state == stateSelectMethod {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			if m.state == stateSelectMethod && len(m.visible) > 0 {
				m.showListing()
				return m, nil
			}

		case "esc":
			if m.state == stateShowListing {
				m.state = stateSelectMethod
				return m, nil
			}
		}
	}

	if m.state == stateShowListing {
		var cmd tea.Cmd
		m.listing, cmd = m.listing.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		if msg.String() == "esc" {
			m.filter.SetValue("")
			m.applyFilter()
		}
		m.filter.Blur()
		m.state = stateSelectMethod
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, meth := range m.methods {
		if q == "" || strings.Contains(strings.ToLower(meth.Descriptor.Name()), q) {
			m.visible = append(m.visible, meth)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) showListing() {
	meth := m.visible[m.selected]
	m.listing.SetContent(methodBody(meth, styledRender, true))
	m.listing.GotoTop()
	m.state = stateShowListing
}

func styledRender(s lipgloss.Style, text string) string {
	return s.Render(text)
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.typ == nil {
		return "Assembling recipe..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Stack Assembler"))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(m.typ.String()))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectMethod, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		for i, meth := range m.visible {
			line := methodHeader(meth, styledRender)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + meth.Descriptor.Name() + meth.Descriptor.Descriptor()))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("  no matching methods"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter apply • esc clear"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter show • q quit"))
		}

	case stateShowListing:
		meth := m.visible[m.selected]
		b.WriteString(methodHeader(meth, styledRender))
		b.WriteString("\n\n")
		b.WriteString(m.listing.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, cfg *assembly.Config) error {
	p := tea.NewProgram(newInteractiveModel(filename, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
