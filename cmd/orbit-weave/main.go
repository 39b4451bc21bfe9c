package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orbit-weave/audio"
	"github.com/lixenwraith/orbit-weave/config"
	"github.com/lixenwraith/orbit-weave/engine"
	"github.com/lixenwraith/orbit-weave/export"
	"github.com/lixenwraith/orbit-weave/input"
	"github.com/lixenwraith/orbit-weave/parameter"
	"github.com/lixenwraith/orbit-weave/render"
	"github.com/lixenwraith/orbit-weave/status"
)

var (
	configFlag      = flag.String("config", "", "Path to TOML configuration file")
	colorModeFlag   = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	soundFlag       = flag.Bool("sound", false, "Enable audio cues")
	debugFlag       = flag.Bool("debug", false, "Write debug log to logs/orbit-weave.log")
	fpsFlag         = flag.Int("fps", 0, "Frame rate override (0 = config)")
	exportFlag      = flag.String("export", "", "Headless: simulate and write the trail image to this path")
	revolutionsFlag = flag.Int("revolutions", 2, "Outer revolutions simulated with -export")
)

// flashFrames is how long an HUD message stays up
const flashFrames = 120

func main() {
	var screen tcell.Screen

	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mORBIT-WEAVE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *fpsFlag != 0 {
		cfg.FPS = *fpsFlag
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -fps: %v\n", err)
			os.Exit(1)
		}
	}

	if *exportFlag != "" {
		s, err := runHeadless(cfg, *exportFlag, *revolutionsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d segments to %s\n", s.Trail().Len(), *exportFlag)
		return
	}

	keys, err := input.NewKeyTable(cfg.Bindings())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid key bindings: %v\n", err)
		os.Exit(1)
	}

	applyColorMode(*colorModeFlag)
	screen, err = tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(render.RGBAToTcell(parameter.BackgroundColor)))

	sound := audio.NewSoundManager(0.6)
	if *soundFlag {
		if err := sound.Initialize(); err != nil {
			log.Printf("audio unavailable: %v (continuing without audio)", err)
		} else {
			defer sound.Cleanup()
		}
	}

	sessionCfg := cfg.Session()
	session := engine.NewSession(sessionCfg)
	registry := status.NewRegistry()
	renderer := render.NewRenderer(screen, render.SceneFromSession(sessionCfg, cfg.View.Width, cfg.View.Height), registry)

	eventChan := make(chan tcell.Event, 256)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer frameTicker.Stop()

	var meter fpsMeter
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			switch keys.Translate(ev) {
			case input.IntentQuit:
				log.Printf("session %s quit after %d frames", session.ID(), session.Frames())
				return
			case input.IntentClear:
				session.Reset()
				sound.PlayClear()
			case input.IntentPause:
				session.TogglePaused()
			case input.IntentExport:
				path := snapshotName(cfg.ExportDir, time.Now())
				if err := export.Trail(session.Trail().Segments(), exportView(cfg), path); err != nil {
					log.Printf("export failed: %v", err)
					renderer.Flash("export failed: "+err.Error(), flashFrames)
				} else {
					renderer.Flash("exported "+path, flashFrames)
				}
			case input.IntentResize:
				screen.Sync()
				renderer.Resize()
			}

		case now := <-frameTicker.C:
			dt := now.Sub(last).Seconds()
			last = now

			f := session.Advance(dt)
			if f.Completed {
				sound.PlayChime()
			}
			publish(registry, session, f, meter.tick(now))
			renderer.Draw(f, session.Trail())
		}
	}
}
