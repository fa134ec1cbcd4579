package ui

import (
	"fyne.io/fyne/v2"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// newToolButton creates an icon-only toolbar button with a hover tooltip.
func newToolButton(icon fyne.Resource, tooltip string, tapped func()) *ttwidget.Button {
	return newActionButton("", icon, tooltip, tapped)
}

// newActionButton creates a labelled quote action. The tooltip names what
// the quote needs before the action is enabled.
func newActionButton(label string, icon fyne.Resource, tooltip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon(label, icon, tapped)
	btn.SetToolTip(tooltip)
	return btn
}
