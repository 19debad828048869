package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single preset equation in the menu.
type menuItem struct {
	name     string
	equation string
	note     string
}

// menuCategory groups related presets under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// presetMenu defines the equation picker categories and items.
var presetMenu = []menuCategory{
	{
		name: "Polynomial",
		items: []menuItem{
			{name: "Parabola", equation: "x**2"},
			{name: "Cubic", equation: "x**3 - 3x", note: "two extrema"},
			{name: "Quartic well", equation: "x**4 - 2x**2", note: "double well"},
			{name: "Line", equation: "2x + 1"},
		},
	},
	{
		name: "Trigonometric",
		items: []menuItem{
			{name: "Sine", equation: "sin(x)"},
			{name: "Damped sine", equation: "x*sin(x)"},
			{name: "Sinc", equation: "sin(x)/x", note: "removable singularity"},
			{name: "Tangent", equation: "tan(x)", note: "poles at pi/2 + k*pi"},
		},
	},
	{
		name: "Exp & Log",
		items: []menuItem{
			{name: "Gaussian", equation: "exp(-x**2)"},
			{name: "Logarithm", equation: "log(x)", note: "x > 0"},
			{name: "Decay", equation: "x*exp(-x)"},
			{name: "Logistic", equation: "1/(1 + exp(-x))"},
		},
	},
	{
		name: "Rational",
		items: []menuItem{
			{name: "Reciprocal", equation: "1/x", note: "pole at 0"},
			{name: "Witch of Agnesi", equation: "1/(1 + x**2)"},
			{name: "Hole at 2", equation: "(x**2 - 4)/(x - 2)", note: "removable"},
		},
	},
	{
		name: "Surfaces",
		items: []menuItem{
			{name: "Paraboloid", equation: "x**2 + y**2", note: "minimum at origin"},
			{name: "Saddle", equation: "x**2 - y**2"},
			{name: "Egg crate", equation: "sin(x)*cos(y)"},
			{name: "Gaussian bump", equation: "exp(-(x**2 + y**2))"},
			{name: "Path dependent", equation: "(x**2 - y**2)/(x**2 + y**2)", note: "no origin limit"},
		},
	},
}

// renderMenu renders the floating preset-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Preset Equations"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range presetMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(accentStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(presetMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 56)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := presetMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(exprStyle.Render(item.equation))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(dimStyle.Render(item.equation))
		}
		if item.note != "" {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", item.note)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
