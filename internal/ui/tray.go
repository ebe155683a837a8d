// internal/ui/tray.go
package ui

import (
	_ "embed"
	"log"

	"github.com/SiirRandall/hud-banner/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

//go:embed assets/tray.svg
var traySVG []byte

func trayIcon() fyne.Resource {
	return fyne.NewStaticResource("tray.svg", traySVG)
}

// EnableSystemTray installs the tray icon and menu. Call before Run.
func (u *AppUI) EnableSystemTray() {
	u.app.SetIcon(trayIcon())
	desk, ok := u.app.(desktop.App)
	if !ok {
		log.Println("[tray] desktop.App not available (non-desktop build?)")
		return
	}
	desk.SetSystemTrayIcon(trayIcon())
	desk.SetSystemTrayMenu(u.buildTrayMenu())
	log.Println("[tray] system tray menu installed")
}

func (u *AppUI) buildTrayMenu() *fyne.Menu {
	showItem := fyne.NewMenuItem("Show HUD", func() {
		if u.win == nil {
			log.Println("[tray] Show HUD: window not created yet")
			return
		}
		u.win.Show()
		u.win.RequestFocus()
	})
	hideItem := fyne.NewMenuItem("Hide HUD", func() {
		if u.win != nil {
			u.win.Hide()
		}
	})
	refreshItem := fyne.NewMenuItem("Refresh Weather Now", u.refreshWeatherNow)
	folderItem := fyne.NewMenuItem("Open Config Folder…", func() { openFolder(config.Dir(u.cfgPath)) })
	aboutItem := fyne.NewMenuItem("About", func() { u.showAbout() })

	// fyne appends its own Quit item to tray menus
	return fyne.NewMenu("HUD Banner",
		showItem,
		hideItem,
		fyne.NewMenuItemSeparator(),
		refreshItem,
		folderItem,
		aboutItem,
	)
}
