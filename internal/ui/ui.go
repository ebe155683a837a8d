package ui

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/SiirRandall/hud-banner/internal/config"
	"github.com/SiirRandall/hud-banner/internal/display"
	"github.com/SiirRandall/hud-banner/internal/hud"
	"github.com/SiirRandall/hud-banner/internal/scheduler"
	"github.com/SiirRandall/hud-banner/internal/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const appID = "io.github.siirrandall.hud-banner"

type AppUI struct {
	cfgPath  string
	configOK bool
	hud      *hud.HUD
	app      fyne.App
	win      fyne.Window
	banner   *widgets.Banner
	sched    *scheduler.Scheduler
	cancel   context.CancelFunc
}

func NewAppUI(settings config.Settings, configOK bool, cfgPath string, fetcher hud.Fetcher) *AppUI {
	u := &AppUI{
		cfgPath:  cfgPath,
		configOK: configOK,
		app:      app.NewWithID(appID),
	}
	u.hud = hud.New(settings, configOK, fetcher, nil, u.render)
	return u
}

func (u *AppUI) Run() error {
	u.win = newHUDWindow(u.app)
	u.banner = widgets.NewBanner("Initializing HUD...", u.resizeBy)
	u.banner.OnSecondaryTap = u.showContextMenu

	u.win.SetContent(u.banner)
	u.win.Resize(fyne.NewSize(980, 70))
	u.win.SetCloseIntercept(func() { u.win.Hide() })
	u.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			u.app.Quit()
		}
	})

	sched, err := u.hud.Scheduler()
	if err != nil {
		return err
	}
	u.sched = sched
	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	// fyne.Do needs the event loop, so renders start with it.
	u.app.Lifecycle().SetOnStarted(func() { u.sched.Start(ctx) })
	u.app.Lifecycle().SetOnStopped(u.stop)

	u.win.ShowAndRun()
	return nil
}

// newHUDWindow prefers a borderless splash window when the desktop driver
// offers one.
func newHUDWindow(a fyne.App) fyne.Window {
	if drv, ok := a.Driver().(desktop.Driver); ok {
		w := drv.CreateSplashWindow()
		w.SetTitle("HUD Banner")
		w.SetPadded(false)
		return w
	}
	w := a.NewWindow("HUD Banner")
	w.SetPadded(false)
	return w
}

func (u *AppUI) stop() {
	if u.cancel != nil {
		u.cancel()
	}
	if u.sched != nil {
		u.sched.Stop()
	}
}

// render is called from scheduler goroutines.
func (u *AppUI) render(t display.Text) {
	fyne.Do(func() {
		if u.banner != nil {
			u.banner.SetText(t)
		}
	})
}

func (u *AppUI) resizeBy(d fyne.Delta) {
	cur := u.win.Canvas().Size()
	floor := u.banner.MinSize()
	w, h := cur.Width+d.DX, cur.Height+d.DY
	if w < floor.Width {
		w = floor.Width
	}
	if h < floor.Height {
		h = floor.Height
	}
	u.win.Resize(fyne.NewSize(w, h))
}

func (u *AppUI) refreshWeatherNow() {
	go u.hud.RefreshWeather(context.Background())
}

func (u *AppUI) showContextMenu(ev *fyne.PointEvent) {
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Refresh Weather Now", u.refreshWeatherNow),
		fyne.NewMenuItem("Open Config Folder…", func() { openFolder(config.Dir(u.cfgPath)) }),
		fyne.NewMenuItem("About", func() { u.showAbout() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { u.app.Quit() }),
	)
	widget.ShowPopUpMenuAtPosition(menu, u.win.Canvas(), ev.AbsolutePosition)
}

/* Small helpers */

func openFolder(path string) {
	switch runtime.GOOS {
	case "darwin":
		_ = exec.Command("open", path).Start()
	case "windows":
		_ = exec.Command("explorer", path).Start()
	default:
		_ = exec.Command("xdg-open", path).Start()
	}
}
