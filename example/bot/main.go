package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/movesync/event"
	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/physics"
	"github.com/oomph-ac/movesync/player"
	"github.com/oomph-ac/movesync/settings"
	"github.com/oomph-ac/movesync/transport"
	"github.com/oomph-ac/movesync/utils"
	"github.com/oomph-ac/movesync/wire"
	"github.com/oomph-ac/movesync/world"
	"github.com/sandertv/gophertunnel/minecraft"
	"github.com/sandertv/gophertunnel/minecraft/protocol/login"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// The following program joins a server and walks the player in a square, turning a quarter turn
// every two seconds.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ./bot <remote_addr> [settings_path]")
		return
	}
	remoteAddr, path := os.Args[1], "settings.toml"
	if len(os.Args) > 2 {
		path = os.Args[2]
	}
	if err := settings.SaveDefault(path); err == nil {
		fmt.Printf("Default settings written to %v\n", path)
	}
	conf, err := settings.Load(path)
	if err != nil {
		panic(err)
	}
	log := newLogger(conf.Log)

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	conn, err := minecraft.Dialer{
		IdentityData: login.IdentityData{DisplayName: "movesync"},
	}.Dial("raknet", remoteAddr)
	if err != nil {
		panic(err)
	}
	defer conn.Close()
	if err := conn.DoSpawn(); err != nil {
		panic(err)
	}

	data := conn.GameData()
	w := world.New(log)
	tr := transport.NewBedrock(log, conn, data, w)

	pos := utils.Vec32To64(data.PlayerPosition)
	pos[1] -= game.DefaultPlayerHeightOffset
	p := player.New(log, w, tr, physics.NewState(pos), player.Config{
		EntityID:     int64(data.EntityRuntimeID),
		Movement:     conf.Movement,
		Capabilities: tr.Capabilities(),
	})
	tr.Attach(p)
	defer p.Close()

	p.Subscribe(event.EventIDForcedMove, func(ev event.Event) {
		log.Infof("position corrected to %v", ev.(event.ForcedMoveEvent).Position)
	})
	p.HandleLogin()
	p.HandleTeleport(wire.AuthoritativePose{
		X: pos[0], Y: pos[1], Z: pos[2],
		Yaw:   float64(data.Yaw),
		Pitch: float64(data.Pitch),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go wander(ctx, p, log)

	for {
		pk, err := conn.ReadPacket()
		if err != nil {
			log.Errorf("connection closed: %v", err)
			return
		}
		if err := tr.HandlePacket(pk); err != nil {
			log.Errorf("failed handling %T: %v", pk, err)
		}
	}
}

// wander walks the player forward, turning a quarter turn every 40 ticks.
func wander(ctx context.Context, p *player.Player, log *logrus.Logger) {
	p.SetControl(player.ControlForward, true)
	p.SetControl(player.ControlSprint, true)
	defer p.ClearControls()

	yaw, _ := p.Orientation()
	for {
		if st, err := p.WaitForTicks(40).Wait(ctx); err != nil || st != player.TaskCompleted {
			return
		}
		yaw += math.Pi / 2
		st, err := p.Look(yaw, 0, player.LookOpts{Easing: true}).Wait(ctx)
		if err != nil {
			return
		}
		log.Debugf("look finished: %v", st)
	}
}

// newLogger creates a logger writing to the file in the settings passed, or stdout if none is set.
func newLogger(conf settings.Log) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if lvl, err := logrus.ParseLevel(conf.Level); err == nil {
		log.SetLevel(lvl)
	}
	if conf.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSizeMB,
			MaxBackups: conf.MaxBackups,
		})
	}
	return log
}
