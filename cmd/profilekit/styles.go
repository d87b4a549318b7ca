package main

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

var flavor = catppuccin.Mocha

var (
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

var (
	// titleStyle heads a profile listing.
	titleStyle = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)

	// readOnlyStyle marks the Build Settings profile.
	readOnlyStyle = lipgloss.NewStyle().Foreground(colorYellow)

	dimStyle     = lipgloss.NewStyle().Foreground(colorOverlay0)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	failureStyle = lipgloss.NewStyle().Foreground(colorRed)
)
