package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/theapemachine/errnie"

	"noisim"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusProgram focus = iota
	focusMenu
	focusParam
	focusQubits
	focusShots
)

const programFile = "program.txt"

// Model represents the TUI application state.
type Model struct {
	sim       *noisim.NoisySimulator
	numQubits int
	preset    int

	width  int
	height int
	focus  focus

	statusMsg string

	// Menu state
	menuCat  int
	menuItem int
	pending  menuItem
	params   []float64

	paramInput textinput.Model
	qubitInput textinput.Model
	shotsInput textinput.Model

	// Last run
	hist  map[int]int
	shots int
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 24
	return ti
}

func initialModel() Model {
	m := Model{numQubits: 3}
	m.paramInput = newInput("pi/2")
	m.qubitInput = newInput("0, 1")
	m.shotsInput = newInput("1024")
	m.rebuild(nil)
	return m
}

// presetReadout builds the readout table for presets that need one sized
// to the current register.
func presetReadout(preset noisePreset, numQubits int) [][2]float64 {
	if preset.name != "readout skew" {
		return preset.readout
	}
	readout := make([][2]float64, numQubits)
	for q := range readout {
		readout[q] = [2]float64{0.02, 0.05}
	}
	return readout
}

// rebuild replaces the simulator for the current qubit count and noise
// preset, re-recording the given program into it.
func (m *Model) rebuild(ops []noisim.Opcode) {
	preset := noisePresets[m.preset]
	sim, err := noisim.NewNoisySimulator(m.numQubits, preset.global, presetReadout(preset, m.numQubits))
	if err != nil {
		errnie.Info("error: %v", err)
		m.statusMsg = err.Error()
		return
	}
	if len(ops) > 0 {
		if err := sim.RecordProgram(ops); err != nil {
			errnie.Info("error: %v", err)
			m.statusMsg = err.Error()
		}
	}
	m.sim = sim
	m.hist = nil
	m.shots = 0
}

// parseQubitList parses "0, 2, 1" into qubit indices; nil on failure.
func parseQubitList(input string) []int {
	var qubits []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		q, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		qubits = append(qubits, q)
	}
	return qubits
}

// placeGate records the pending gate with the collected params and qubits.
func (m *Model) placeGate() {
	qubits := parseQubitList(m.qubitInput.Value())
	if len(qubits) != m.pending.arity {
		m.statusMsg = fmt.Sprintf("%s needs %d qubit(s)", m.pending.token, m.pending.arity)
		return
	}
	if err := m.sim.LoadOpcode(m.pending.token, qubits, m.params, false, nil); err != nil {
		errnie.Info("error: %v", err)
		m.statusMsg = err.Error()
		return
	}
	errnie.Info("recorded %s on %v", m.pending.token, qubits)
	m.statusMsg = fmt.Sprintf("Recorded %s on %v", m.pending.token, qubits)
	m.hist = nil
	m.focus = focusProgram
}

// runShots replays the program and refreshes the histogram panel.
func (m *Model) runShots() {
	shots, err := strconv.Atoi(strings.TrimSpace(m.shotsInput.Value()))
	if err != nil || shots <= 0 {
		m.statusMsg = "Shot count must be a positive integer"
		return
	}
	hist, err := m.sim.MeasureShotsAll(shots)
	if err != nil {
		errnie.Info("error: %v", err)
		m.statusMsg = err.Error()
		return
	}
	errnie.Info("ran %d shots over %d qubits", shots, m.numQubits)
	m.hist = hist
	m.shots = shots
	m.statusMsg = fmt.Sprintf("Ran %d shots", shots)
	m.focus = focusProgram
}

func (m *Model) saveProgram() {
	text := noisim.FormatProgram(m.numQubits, m.sim.Opcodes())
	if err := os.WriteFile(programFile, []byte(text), 0644); err != nil {
		errnie.Info("error: %v", err)
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + programFile
}

func (m *Model) loadProgram() {
	data, err := os.ReadFile(programFile)
	if err != nil {
		errnie.Info("error: %v", err)
		m.statusMsg = fmt.Sprintf("Load error: %v", err)
		return
	}
	n, ops, err := noisim.ParseProgram(string(data))
	if err != nil {
		errnie.Info("error: %v", err)
		m.statusMsg = fmt.Sprintf("Parse error: %v", err)
		return
	}
	if n > 0 {
		m.numQubits = n
	}
	m.rebuild(ops)
	m.statusMsg = fmt.Sprintf("Loaded %s (%d qubits)", programFile, m.numQubits)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusProgram:
			switch key {
			case "q":
				return m, tea.Quit
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "r":
				m.shotsInput.SetValue("")
				m.shotsInput.Focus()
				m.focus = focusShots
			case "n":
				m.preset = (m.preset + 1) % len(noisePresets)
				m.rebuild(m.sim.OriginalOpcodes())
				m.statusMsg = "Noise: " + noisePresets[m.preset].name
			case "+", "=":
				if m.numQubits < noisim.MaxQubits {
					m.numQubits++
					m.rebuild(nil)
				}
			case "-":
				if m.numQubits > 1 {
					m.numQubits--
					m.rebuild(nil)
				}
			case "ctrl+r":
				m.rebuild(nil)
				m.statusMsg = "Cleared program"
			case "s":
				m.saveProgram()
			case "l":
				m.loadProgram()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusProgram
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				m.pending = gateMenu[m.menuCat].items[m.menuItem]
				m.params = nil
				if m.pending.numParams > 0 {
					m.paramInput.SetValue("")
					m.paramInput.Placeholder = m.pending.paramHint
					m.paramInput.Focus()
					m.focus = focusParam
				} else {
					m.qubitInput.SetValue("")
					m.qubitInput.Focus()
					m.focus = focusQubits
				}
			}

		case focusParam:
			switch key {
			case "esc":
				m.focus = focusProgram
			case "enter":
				params, err := noisim.ParseAngleList(m.paramInput.Value())
				if err != nil || len(params) != m.pending.numParams {
					m.statusMsg = fmt.Sprintf("%s needs %d parameter(s) — numbers or pi expressions",
						m.pending.token, m.pending.numParams)
					break
				}
				m.params = params
				m.qubitInput.SetValue("")
				m.qubitInput.Focus()
				m.focus = focusQubits
			default:
				var cmd tea.Cmd
				m.paramInput, cmd = m.paramInput.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusQubits:
			switch key {
			case "esc":
				m.focus = focusProgram
			case "enter":
				m.placeGate()
			default:
				var cmd tea.Cmd
				m.qubitInput, cmd = m.qubitInput.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusShots:
			switch key {
			case "esc":
				m.focus = focusProgram
			case "enter":
				m.runShots()
			default:
				var cmd tea.Cmd
				m.shotsInput, cmd = m.shotsInput.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}
