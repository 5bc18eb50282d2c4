// Command sandbox is a terminal playground for the behavior core: a
// chipmunk-backed body steered by an FSM and abilities, with tcell
// rendering, audio feedback on lifecycle events, and profile
// hot-reload.
//
// Controls: arrows/hjkl move, space dashes, c toggles the crouch lock,
// q/Esc quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"

	"github.com/Bonehead-Labs/actorkit/actor"
	"github.com/Bonehead-Labs/actorkit/config"
	"github.com/Bonehead-Labs/actorkit/core"
	"github.com/Bonehead-Labs/actorkit/event"
	"github.com/Bonehead-Labs/actorkit/input"
)

const (
	arenaWidth  = 60.0
	arenaHeight = 20.0
)

var profileFlag = flag.String("profile", "", "behavior profile to load (YAML)")

func main() {
	var screen tcell.Screen

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "sandbox crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	opts, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad environment: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.Create("sandbox.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: opts.SlogLevel()}))

	queue := event.NewQueue()
	sinks := event.Fanout{queue, event.NewSlogSink(logger)}
	if opts.TelemetryURL != "" {
		conn, _, err := websocket.DefaultDialer.Dial(opts.TelemetryURL, nil)
		if err != nil {
			logger.Warn("telemetry dial failed", "url", opts.TelemetryURL, "error", err)
		} else {
			ws := event.NewWebSocketSink(conn, logger)
			defer ws.Close()
			sinks = append(sinks, ws)
		}
	}

	space, body := newArena(arenaWidth, arenaHeight)

	profilePath := *profileFlag
	if profilePath == "" {
		profilePath = opts.Profile
	}

	loadDriver := func() (*actor.Driver, error) {
		var p *config.Profile
		var err error
		if profilePath != "" {
			p, err = config.Load(profilePath)
		} else {
			p, err = config.Parse([]byte(defaultProfile))
		}
		if err != nil {
			return nil, err
		}
		machine, manager, err := p.Assemble(body, demoRegistry(),
			config.WithSink(sinks), config.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return actor.NewDriver(body, machine, manager, actor.WithLogger(logger)), nil
	}

	driver, err := loadDriver()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load profile: %v\n", err)
		os.Exit(1)
	}

	var watchCh chan string
	if profilePath != "" {
		watcher, err := config.NewWatcher(filepath.Dir(profilePath))
		if err != nil {
			logger.Warn("profile watch failed", "error", err)
		} else {
			defer watcher.Close()
			watchCh = watcher.Events
		}
	}

	sounds := newSoundBoard(opts.Mute)
	defer sounds.close()

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "open screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 64)
	quitPoll := make(chan struct{})
	go screen.ChannelEvents(events, quitPoll)
	defer close(quitPoll)

	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	tickDur := time.Duration(float64(time.Second) / tickRate)
	ticker := time.NewTicker(tickDur)
	defer ticker.Stop()

	translator := input.NewTcellTranslator(nil, 0)
	var recent []string
	crouched := false

loop:
	for {
		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if axis, ok := translator.MoveAxis(tev); ok {
					if axis.Name == "move_x" {
						body.move.X = axis.Value
					} else {
						body.move.Y = axis.Value
					}
					driver.HandleAxis(axis)
					continue
				}
				act, ok := translator.Translate(tev)
				if !ok {
					continue
				}
				switch act.Name {
				case "quit":
					break loop
				case "crouch":
					crouched = !crouched
					if crouched {
						driver.Manager().Activate("crouch")
					} else {
						driver.Manager().Deactivate("crouch")
					}
				default:
					driver.HandleAction(act)
				}
			}

		case path := <-watchCh:
			reloaded, err := loadDriver()
			if err != nil {
				logger.Warn("profile reload failed", "path", path, "error", err)
				continue
			}
			driver = reloaded
			crouched = false
			logger.Info("profile reloaded", "path", path)

		case <-ticker.C:
			dt := tickDur.Seconds()
			driver.TickLogic(dt)
			driver.TickPhysics(dt)
			space.Step(dt)

			for _, n := range queue.Drain() {
				switch n.Type {
				case event.TypeAbilityStarted:
					sounds.play(880, 90*time.Millisecond)
				case event.TypeAbilityEnded:
					sounds.play(440, 90*time.Millisecond)
				case event.TypeAbilityFailed:
					sounds.play(220, 150*time.Millisecond)
				}
				recent = append(recent, describe(n))
				if len(recent) > 5 {
					recent = recent[len(recent)-5:]
				}
			}

			// Keyboard intent decays each frame; key repeat sustains it
			body.move = core.Vec2{}

			render(screen, body, driver, recent, crouched)
		}
	}
}

func describe(n event.Notification) string {
	switch n.Type {
	case event.TypeStateChanged:
		return fmt.Sprintf("%s %s -> %s", n.Type, n.Previous, n.Current)
	case event.TypeAbilityFailed:
		return fmt.Sprintf("%s %s (%s)", n.Type, n.AbilityID, n.Reason)
	default:
		return fmt.Sprintf("%s %s", n.Type, n.AbilityID)
	}
}

func render(screen tcell.Screen, body *chipBody, driver *actor.Driver, recent []string, crouched bool) {
	screen.Clear()
	style := tcell.StyleDefault

	w := int(arenaWidth) + 2
	h := int(arenaHeight) + 2
	for x := 0; x < w; x++ {
		screen.SetContent(x, 0, '-', nil, style)
		screen.SetContent(x, h-1, '-', nil, style)
	}
	for y := 0; y < h; y++ {
		screen.SetContent(0, y, '|', nil, style)
		screen.SetContent(w-1, y, '|', nil, style)
	}

	pos := body.Position()
	px := 1 + int(pos.X)
	py := 1 + int(pos.Y)
	if px >= 1 && px < w-1 && py >= 1 && py < h-1 {
		glyph := '@'
		if crouched {
			glyph = 'o'
		}
		screen.SetContent(px, py, glyph, nil, style.Bold(true))
	}

	machine := driver.Machine()
	manager := driver.Manager()
	status := fmt.Sprintf("state=%s t=%.1fs", machine.CurrentState(), machine.TimeInCurrent())
	if owner, ok := manager.MotionOwner(); ok {
		status += " motion=" + owner
	}
	drawText(screen, 0, h, style, status)
	drawText(screen, 0, h+1, style, fmt.Sprintf("active=%v", manager.ActiveIDs()))
	for i, line := range recent {
		drawText(screen, 0, h+3+i, style.Dim(true), line)
	}
	drawText(screen, 0, h+9, style.Dim(true), "arrows/hjkl move  space dash  c crouch  q quit")

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
