package main

import (
	"fmt"
	"strings"

	"graphcalc/analysis"
	"graphcalc/plot"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// truncate cuts a string to the given visual width with an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// pointString formats a critical point for the side panel.
func pointString(p analysis.Point, twoVars bool) string {
	if twoVars {
		return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
	}
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Z)
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderPlotPanel renders the graph panel: a braille curve for one variable,
// a shaded height map or contour bands for two.
func (m Model) renderPlotPanel(width, height int) string {
	var sb strings.Builder

	title := "Plot"
	if m.focus == focusPlot {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	innerW := max(width-6, 10)
	innerH := max(height-9, 4)

	switch {
	case m.res == nil:
		sb.WriteString(dimStyle.Render("Enter an equation to plot it."))
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Try: x**2 + y**2, sin(x)/x, z = x*y"))
	case m.showReport:
		lines := strings.Split(m.res.report, "\n")
		if len(lines) > innerH+4 {
			lines = lines[:innerH+4]
		}
		for _, line := range lines {
			sb.WriteString(valueStyle.Render(truncate(line, innerW)))
			sb.WriteString("\n")
		}
		sb.WriteString(dimStyle.Render("r to return to the plot"))
	case len(m.res.vars) <= 1:
		cv := plot.SampleCurve(m.res.fn, m.domain, m.resolution)
		sb.WriteString(plot.RenderCurve(cv, innerW, innerH, m.markers()))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s %s", dimStyle.Render("y range:"),
			valueStyle.Render(fmt.Sprintf("[%.3g, %.3g]", cv.YMin, cv.YMax)))
	default:
		s := plot.SampleSurface(m.res.fn, m.domain, m.resolution)
		if m.view == viewContour {
			sb.WriteString(plot.RenderContour(s, innerW, innerH, 10, m.markers()))
		} else {
			sb.WriteString(plot.RenderSurface(s, innerW, innerH, m.markers()))
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s %s", dimStyle.Render("z range:"),
			valueStyle.Render(fmt.Sprintf("[%.3g, %.3g]", s.ZMin, s.ZMax)))
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s x∈[%s, %s]  y∈[%s, %s]  res %d",
		dimStyle.Render("window:"),
		formatBound(m.domain.XMin), formatBound(m.domain.XMax),
		formatBound(m.domain.YMin), formatBound(m.domain.YMax),
		m.resolution)
	if m.statusMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(accentStyle.Render(m.statusMsg))
	}

	return plotPanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderAnalysisPanel renders derivatives, critical points, limits, and
// warnings for the current function.
func (m Model) renderAnalysisPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Analysis"))
	sb.WriteString("\n\n")

	if m.res == nil {
		sb.WriteString(dimStyle.Render("No function yet."))
		return analysisPanelStyle.Width(width).Height(height).Render(sb.String())
	}

	innerW := max(width-6, 16)
	r := m.res
	twoVars := len(r.vars) >= 2

	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("f ="),
		exprStyle.Render(truncate(r.expr.String(), innerW-4)))
	fmt.Fprintf(&sb, "%s %s", labelStyle.Render("type:"), valueStyle.Render(r.props.Type))
	if r.props.HasDegree {
		sb.WriteString(dimStyle.Render(fmt.Sprintf(" (degree %d)", r.props.Degree)))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("symmetry:"), valueStyle.Render(r.props.Symmetry))
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("continuity:"), valueStyle.Render(r.props.Continuous))

	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Derivatives"))
	sb.WriteString("\n")
	for _, name := range analysis.DerivativeOrder {
		d, ok := r.derivs[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %s = %s\n", name, truncate(d.String(), innerW-8))
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %d\n", labelStyle.Render("Critical points:"), len(r.critical))
	shown := min(len(r.critical), 5)
	for _, p := range r.critical[:shown] {
		fmt.Fprintf(&sb, "  %s %s\n", classifyMark(r.extrema, p), pointString(p, twoVars))
	}
	if len(r.critical) > shown {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(r.critical)-shown)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Limits"))
	sb.WriteString("\n")
	for _, entry := range r.limits {
		fmt.Fprintf(&sb, "  %s: %s\n", entry.Label, valueStyle.Render(entry.Value))
	}

	var notes []string
	notes = append(notes, r.validation.Warnings...)
	notes = append(notes, r.domainInfo.Restrictions...)
	if len(notes) > 0 {
		sb.WriteString("\n")
		for _, w := range notes {
			sb.WriteString(warningStyle.Render("⚠ " + truncate(w, innerW-2)))
			sb.WriteString("\n")
		}
	}

	return analysisPanelStyle.Width(width).Height(height).Render(sb.String())
}

// classifyMark marks a critical point by its second-derivative-test bucket.
func classifyMark(ext analysis.Extrema, p analysis.Point) string {
	for _, q := range ext.LocalMinima {
		if q == p {
			return exprStyle.Render("min")
		}
	}
	for _, q := range ext.LocalMaxima {
		if q == p {
			return exprStyle.Render("max")
		}
	}
	for _, q := range ext.SaddlePoints {
		if q == p {
			return accentStyle.Render("sad")
		}
	}
	return dimStyle.Render("  ?")
}

// renderInputPanel renders the equation line and, when the domain editor is
// focused, the four editable bounds.
func (m Model) renderInputPanel(width int) string {
	var sb strings.Builder

	if m.focus == focusDomain {
		sb.WriteString(titleStyle.Render("Domain"))
		sb.WriteString("  ")
		for i, name := range domainFields {
			val := formatBound(m.domainBound(i))
			if i == m.domainField {
				if m.domainInput != "" {
					val = m.domainInput + "_"
				}
				sb.WriteString(fieldActiveStyle.Render(fmt.Sprintf("[%s: %s]", name, val)))
			} else {
				sb.WriteString(dimStyle.Render(fmt.Sprintf(" %s: %s ", name, val)))
			}
			sb.WriteString(" ")
		}
	} else {
		title := "Equation"
		if m.focus == focusInput {
			title += " [ACTIVE]"
		}
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("  ")
		sb.WriteString(m.input.View())
	}

	if m.parseErr != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.parseErr))
	}

	return inputPanelStyle.Width(width).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(accentStyle.Render("Plot:  "))
	sb.WriteString("←→↑↓/hjkl Pan  i/o Zoom  +/- Resolution  p Surface/Contour  c Critical points")
	sb.WriteString("\n")
	sb.WriteString(accentStyle.Render("Keys:  "))
	sb.WriteString("e Edit equation  a Presets  Tab Domain  r Report  ^S Save report  ^R Reset view  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
// It properly handles ANSI escape sequences in the background line.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0
	inEsc := false

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			inEsc = true
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				if inEsc && runes[i] != '\x1b' && runes[i] != '[' && ((runes[i] >= 'A' && runes[i] <= 'Z') || (runes[i] >= 'a' && runes[i] <= 'z')) {
					inEsc = false
					i++
					break
				}
				i++
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if i > 0 && runes[i-1] != '\x1b' && runes[i-1] != '[' && ((runes[i-1] >= 'A' && runes[i-1] <= 'Z') || (runes[i-1] >= 'a' && runes[i-1] <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	// Collect suffix: rest of the background line
	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
