package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"graphcalc/analysis"
	"graphcalc/parse"
	"graphcalc/plot"
	"graphcalc/symbolic"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusPlot focus = iota
	focusInput
	focusDomain
	focusMenu
)

// surfaceView selects how two-variable functions are drawn.
type surfaceView int

const (
	viewShaded surfaceView = iota
	viewContour
)

// domainFields is the edit order of the domain bound editor.
var domainFields = []string{"x min", "x max", "y min", "y max"}

// result bundles everything derived from one successfully parsed equation.
type result struct {
	raw        string
	expr       symbolic.Expr
	vars       []string
	fn         symbolic.EvalFunc
	validation parse.Validation
	domainInfo parse.DomainInfo
	derivs     map[string]symbolic.Expr
	props      analysis.Properties
	critical   []analysis.Point
	extrema    analysis.Extrema
	limits     []analysis.LimitEntry
	report     string
}

// Model represents the TUI application state.
type Model struct {
	parser *parse.Parser
	engine *analysis.Engine
	logger *log.Logger

	input     textinput.Model
	width     int
	height    int
	focus     focus
	statusMsg string
	parseErr  string

	// Plot state
	domain      plot.Domain
	resolution  int
	view        surfaceView
	showMarkers bool
	showReport  bool

	// Domain editor state
	domainField int
	domainInput string

	// Menu state
	menuCat  int
	menuItem int

	res *result // last successful evaluation, nil before the first
}

func initialModel(logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.Placeholder = "x**2 + y**2"
	ti.Prompt = "f = "
	ti.CharLimit = 200
	ti.Focus()

	m := Model{
		parser:      parse.Default(),
		engine:      analysis.New(logger),
		logger:      logger,
		input:       ti,
		focus:       focusInput,
		domain:      plot.DefaultDomain(),
		resolution:  plot.DefaultResolution,
		showMarkers: true,
	}
	return m
}

// evaluate runs the full pipeline on raw input: parse, validate, compile,
// analyze. A parse failure keeps the previous result on screen.
func (m *Model) evaluate(raw string) {
	expr, err := m.parser.Parse(raw)
	if err != nil {
		m.parseErr = err.Error()
		m.logger.Debug("parse failed", "input", raw, "err", err)
		return
	}
	m.parseErr = ""

	vars := symbolic.Vars(expr)
	fn, err := parse.NumericFunc(expr, nil)
	if err != nil {
		m.parseErr = err.Error()
		return
	}
	if len(vars) == 0 {
		c := fn
		fn = func(args ...float64) float64 { return c() }
	}

	d := m.domain
	r := &result{
		raw:        raw,
		expr:       expr,
		vars:       vars,
		fn:         fn,
		validation: m.parser.Validate(expr),
		domainInfo: m.parser.DomainInfo(expr),
		derivs:     m.engine.Derivatives(expr),
		props:      m.engine.Properties(expr),
		critical:   m.engine.CriticalPoints(expr, d.XMin, d.XMax, d.YMin, d.YMax),
		extrema:    m.engine.Extrema(expr, d.XMin, d.XMax, d.YMin, d.YMax),
		limits:     m.engine.Limits(expr),
		report:     m.engine.Report(expr),
	}
	m.res = r
	m.logger.Info("evaluated", "input", raw, "expr", expr.String(), "vars", vars)
}

// reanalyze refreshes the domain-dependent parts of the current result after
// the plot window changed.
func (m *Model) reanalyze() {
	if m.res == nil {
		return
	}
	d := m.domain
	m.res.critical = m.engine.CriticalPoints(m.res.expr, d.XMin, d.XMax, d.YMin, d.YMax)
	m.res.extrema = m.engine.Extrema(m.res.expr, d.XMin, d.XMax, d.YMin, d.YMax)
}

// markers converts the critical points of the current result into plot
// markers: (x, f(x)) for curves, (x, y) grid positions for surfaces.
func (m *Model) markers() []plot.Marker {
	if m.res == nil || !m.showMarkers {
		return nil
	}
	out := make([]plot.Marker, 0, len(m.res.critical))
	for _, p := range m.res.critical {
		if len(m.res.vars) <= 1 {
			out = append(out, plot.Marker{X: p.X, Y: p.Z})
		} else {
			out = append(out, plot.Marker{X: p.X, Y: p.Y})
		}
	}
	return out
}

// saveReport writes the current analysis report next to the binary.
func (m *Model) saveReport() {
	if m.res == nil {
		m.statusMsg = "Nothing to save yet"
		return
	}
	if err := os.WriteFile("analysis.txt", []byte(m.res.report+"\n"), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved analysis.txt"
}

// panDomain shifts the window by a tenth of each span.
func (m *Model) panDomain(dx, dy float64) {
	sx := (m.domain.XMax - m.domain.XMin) / 10
	sy := (m.domain.YMax - m.domain.YMin) / 10
	m.domain.XMin += dx * sx
	m.domain.XMax += dx * sx
	m.domain.YMin += dy * sy
	m.domain.YMax += dy * sy
	m.reanalyze()
}

// zoomDomain scales both spans about their centers.
func (m *Model) zoomDomain(factor float64) {
	cx := (m.domain.XMin + m.domain.XMax) / 2
	cy := (m.domain.YMin + m.domain.YMax) / 2
	hx := (m.domain.XMax - m.domain.XMin) / 2 * factor
	hy := (m.domain.YMax - m.domain.YMin) / 2 * factor
	m.domain = plot.Domain{XMin: cx - hx, XMax: cx + hx, YMin: cy - hy, YMax: cy + hy}
	m.reanalyze()
}

// domainBound returns the value of the currently selected editor field.
func (m *Model) domainBound(i int) float64 {
	switch i {
	case 0:
		return m.domain.XMin
	case 1:
		return m.domain.XMax
	case 2:
		return m.domain.YMin
	}
	return m.domain.YMax
}

// setDomainBound commits val into field i, rejecting windows that collapse.
func (m *Model) setDomainBound(i int, val float64) bool {
	next := m.domain
	switch i {
	case 0:
		next.XMin = val
	case 1:
		next.XMax = val
	case 2:
		next.YMin = val
	default:
		next.YMax = val
	}
	if err := next.Validate(); err != nil {
		m.statusMsg = err.Error()
		return false
	}
	m.domain = next
	m.reanalyze()
	return true
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-20, 20)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusInput:
			switch key {
			case "tab":
				m.focus = focusPlot
				m.input.Blur()
			case "enter":
				m.evaluate(m.input.Value())
			case "esc":
				m.focus = focusPlot
				m.input.Blur()
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusPlot:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusDomain
				m.domainField = 0
				m.domainInput = ""
			case "e", "enter":
				m.focus = focusInput
				m.input.Focus()
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "p":
				if m.view == viewShaded {
					m.view = viewContour
				} else {
					m.view = viewShaded
				}
			case "c":
				m.showMarkers = !m.showMarkers
			case "r":
				m.showReport = !m.showReport
			case "+", "=":
				m.resolution = plot.ClampResolution(m.resolution + 20)
			case "-":
				m.resolution = plot.ClampResolution(m.resolution - 20)
			case "left", "h":
				m.panDomain(-1, 0)
			case "right", "l":
				m.panDomain(1, 0)
			case "up", "k":
				m.panDomain(0, 1)
			case "down", "j":
				m.panDomain(0, -1)
			case "i":
				m.zoomDomain(0.5)
			case "o":
				m.zoomDomain(2)
			case "ctrl+r":
				m.domain = plot.DefaultDomain()
				m.resolution = plot.DefaultResolution
				m.reanalyze()
			case "ctrl+s":
				m.saveReport()
			}

		case focusDomain:
			switch key {
			case "esc":
				m.focus = focusPlot
				m.domainInput = ""
			case "tab":
				m.focus = focusInput
				m.domainInput = ""
				m.input.Focus()
			case "left", "h":
				if m.domainField > 0 {
					m.domainField--
					m.domainInput = ""
				}
			case "right", "l":
				if m.domainField < len(domainFields)-1 {
					m.domainField++
					m.domainInput = ""
				}
			case "backspace":
				if len(m.domainInput) > 0 {
					m.domainInput = m.domainInput[:len(m.domainInput)-1]
				}
			case "enter":
				if m.domainInput == "" {
					break
				}
				val, ok := parseBoundExpr(m.domainInput)
				if !ok {
					m.statusMsg = "Invalid bound — use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
					break
				}
				if m.setDomainBound(m.domainField, val) {
					m.domainInput = ""
				}
			default:
				if len(key) == 1 {
					ch := key[0]
					if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' || ch == 'e' || ch == 'E' || ch == '+' ||
						ch == 'p' || ch == 'i' || ch == '*' || ch == '/' {
						m.domainInput += key
					}
				}
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusPlot
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := presetMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(presetMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := presetMenu[m.menuCat].items[m.menuItem]
				m.input.SetValue(item.equation)
				m.evaluate(item.equation)
				m.focus = focusPlot
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	plotWidth := max(m.width-sidePanelW-4, 30)
	inputHeight := 3
	bodyHeight := max(m.height-controlsH-inputHeight-2, 8)

	plotPanel := m.renderPlotPanel(plotWidth, bodyHeight)
	analysisPanel := m.renderAnalysisPanel(sidePanelW, bodyHeight)
	inputPanel := m.renderInputPanel(m.width - 4)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsH-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, plotPanel, analysisPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, inputPanel, controlsPanel)

	// Render preset menu overlay when in menu mode
	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}

	return frame
}
