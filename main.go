// Package main provides the entry point for the Graph Digitizer application.
package main

import (
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"graph-digitizer/internal/app"
	"graph-digitizer/ui/mainwindow"
	"graph-digitizer/ui/prefs"
)

const (
	appTitle   = "Graph Digitizer"
	appVersion = "0.1.0"

	prefKeyVisibility = "datasetVisibility"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	fyneApp := fyneapp.NewWithID("io.github.graph-digitizer")
	fyneApp.Settings().SetTheme(&app.DigitizerTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()
	applyPrefs(appState, appPrefs)

	win := mainwindow.New(fyneApp, appState)

	// Handle command line arguments
	if len(os.Args) > 1 {
		projectPath := os.Args[1]
		if err := appState.LoadProject(projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", projectPath, err)
		}
	}

	setupHotReload(win)

	win.SetCloseIntercept(func() {
		savePrefs(appState, appPrefs)
		win.Close()
	})

	win.Resize(fyne.NewSize(1200, 800))
	win.ShowAndRun()
}

// applyPrefs restores persisted per-dataset visibility.
func applyPrefs(state *app.State, p *prefs.Prefs) {
	vis := p.Bools(prefKeyVisibility)
	for i, ds := range state.Datasets {
		if i < len(vis) {
			ds.Visible = vis[i]
		}
	}
}

func savePrefs(state *app.State, p *prefs.Prefs) {
	vis := make([]bool, len(state.Datasets))
	for i, ds := range state.Datasets {
		vis[i] = ds.Visible
	}
	p.SetBools(prefKeyVisibility, vis)
	if err := p.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(yes bool) {
				if yes {
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
