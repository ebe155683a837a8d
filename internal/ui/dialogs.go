package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

/* About */

// showAbout opens a regular window; the HUD itself is too small to host a
// dialog.
func (u *AppUI) showAbout() {
	w := u.app.NewWindow("About HUD Banner")
	body := widget.NewLabel(strings.Join(u.StatusLines(), "\n"))
	body.Wrapping = fyne.TextWrapWord

	closeBtn := widget.NewButton("Close", func() { w.Close() })
	w.SetContent(container.NewBorder(
		widget.NewLabelWithStyle("HUD Banner (Go/Fyne)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(closeBtn),
		nil, nil,
		body,
	))
	w.Resize(fyne.NewSize(460, 260))
	w.CenterOnScreen()
	w.Show()
}
