package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"octocore/cpu"
	"octocore/vmerr"
)

// model is the bubbletea model driving interactive single-stepping,
// adapted from hejops-gone/cpu/debugger.go's model: the 6502 page-table
// view is replaced by this machine's register/flag/PC/next-instruction
// view (CPU.RenderState), and a memory-peek prompt is added per
// original_source/runner.py's hex-literal command.
type model struct {
	cpu *cpu.CPU

	peekPrompt bool
	peekInput  string
	peekResult string

	err  error
	done bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.peekPrompt {
		return m.updatePeek(keyMsg)
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ", "s":
		err := m.cpu.Step()
		if err != nil {
			if errors.Is(err, vmerr.ErrEndOfProgram) {
				m.done = true
			} else {
				m.err = err
			}
		}

	case "c":
		for {
			err := m.cpu.Step()
			if err != nil {
				if errors.Is(err, vmerr.ErrEndOfProgram) {
					m.done = true
				} else {
					m.err = err
				}
				break
			}
		}

	case "m":
		m.peekPrompt = true
		m.peekInput = ""
	}

	return m, nil
}

func (m model) updatePeek(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.peekPrompt = false
	case "enter":
		m.peekPrompt = false
		addr, err := strconv.ParseInt(strings.TrimPrefix(m.peekInput, "0x"), 16, 32)
		if err != nil {
			m.peekResult = "invalid address"
			return m, nil
		}
		v, err := m.cpu.MemoryRead(int(addr))
		if err != nil {
			m.peekResult = err.Error()
			return m, nil
		}
		m.peekResult = fmt.Sprintf("%#x: %d", addr, v)
	case "backspace":
		if len(m.peekInput) > 0 {
			m.peekInput = m.peekInput[:len(m.peekInput)-1]
		}
	default:
		m.peekInput += keyMsg.String()
	}
	return m, nil
}

var (
	panelStyle = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (m model) View() string {
	state := panelStyle.Render(m.cpu.RenderState())

	help := "[space/s] step  [c] continue  [m] peek memory  [q] quit"
	if m.peekPrompt {
		help = fmt.Sprintf("peek address (hex, enter to confirm, esc to cancel): %s", m.peekInput)
	}

	var extra string
	if m.peekResult != "" {
		extra = "\n" + m.peekResult
	}
	if m.err != nil {
		extra += "\n" + errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, state, help, extra)
}

// runInteractive starts the TUI and runs it until the user quits. Reaching
// the end of the program or a failing step does not close it; the last step
// error, if any, is returned once the user quits.
func runInteractive(c *cpu.CPU) error {
	m, err := tea.NewProgram(model{cpu: c}).Run()
	if err != nil {
		return err
	}
	final := m.(model)
	if final.err != nil {
		return final.err
	}
	return nil
}
