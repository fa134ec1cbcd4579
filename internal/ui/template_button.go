package ui

import (
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// templateButton is a template picker button that reports hover so the
// preview can show the template's placeholder shape.
type templateButton struct {
	widget.Button
	onHover func(hovered bool)
}

func newTemplateButton(label string, tapped func(), onHover func(bool)) *templateButton {
	b := &templateButton{onHover: onHover}
	b.Text = label
	b.OnTapped = tapped
	b.ExtendBaseWidget(b)
	return b
}

// MouseIn implements desktop.Hoverable.
func (b *templateButton) MouseIn(e *desktop.MouseEvent) {
	b.Button.MouseIn(e)
	if b.onHover != nil {
		b.onHover(true)
	}
}

// MouseOut implements desktop.Hoverable.
func (b *templateButton) MouseOut() {
	b.Button.MouseOut()
	if b.onHover != nil {
		b.onHover(false)
	}
}
