package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/eggchase/server/internal/config"
	"github.com/eggchase/server/internal/data"
	"github.com/eggchase/server/internal/handler"
	gonet "github.com/eggchase/server/internal/net"
	"github.com/eggchase/server/internal/net/packet"
	"github.com/eggchase/server/internal/persist"
	"github.com/eggchase/server/internal/rules"
	"github.com/eggchase/server/internal/scripting"
	"github.com/eggchase/server/internal/system"
	"github.com/eggchase/server/internal/world"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, match uuid.UUID) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              eggchase server              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s \033[90m(match %s)\033[0m\n\n", serverName, match)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Config
	cfgPath := "config/server.toml"
	if p := os.Getenv("EGGCHASE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	matchID := uuid.New()
	log = log.With(zap.Stringer("match", matchID))
	printBanner(cfg.Server.Name, matchID)

	// 3. Data and tuning
	printSection("data")
	spawns, err := data.LoadSpawnTable(cfg.Data.SpawnFile, packet.MaxPlayers)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("spawn list missing, using built-in corners", zap.String("file", cfg.Data.SpawnFile))
		spawns, err = data.DefaultSpawnTable(packet.MaxPlayers), nil
	}
	if err != nil {
		return fmt.Errorf("spawns: %w", err)
	}
	printOK(fmt.Sprintf("spawn points loaded (%d slots)", spawns.Count()))

	tuning, err := loadTuning(cfg, log)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	printOK("tuning loaded")
	fmt.Println()

	// 4. World
	w, err := world.New(tuning, spawns, log)
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}

	// 5. Database (optional)
	var (
		repo      *persist.MatchRepo
		persister *system.PersistenceSystem
	)
	saveCtx, stopSaves := context.WithCancel(context.Background())
	defer stopSaves()
	if cfg.Database.DSN != "" {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")

		repo = persist.NewMatchRepo(db)
		if err := repo.StartMatch(ctx, matchID, time.Now()); err != nil {
			return err
		}
		persister = system.NewPersistenceSystem(w.Stores(), w.Clock(), w.Bus(), repo, matchID, cfg.Game.SaveInterval.Duration, log)
		w.Register(persister)
		go persister.Run(saveCtx)
		fmt.Println()
	} else {
		log.Info("database disabled, scores are not persisted")
	}

	// 6. Network
	ln, err := gonet.ListenTCP(cfg.Network.BindAddress)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	netServer := gonet.NewServer(ln, gonet.SessionOptions{
		InQueueSize:  cfg.Network.InQueueSize,
		OutQueueSize: cfg.Network.OutQueueSize,
		ReadSize:     cfg.Network.ReadBufferSize,
		MaxBuffered:  cfg.Network.MaxBufferedBytes,
	}, log)
	go netServer.AcceptLoop()

	sessions := gonet.NewSessionTable()
	pktReg := packet.NewRegistry(log)
	deps := &handler.Deps{World: w, Log: log}
	handler.RegisterAll(pktReg, deps)

	w.Register(system.NewInputSystem(netServer, sessions, pktReg, w.Clock(), cfg.Network.MaxChunksPerTick,
		func(s *gonet.Session) { handler.HandleDisconnect(s, deps) }, log))
	w.Register(system.NewOutputSystem(w, sessions))

	// 7. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	tick := cfg.Network.TickRate.Duration
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("listening on %s", netServer.Addr()))
	printReady(fmt.Sprintf("game loop running (tick: %s)", tick))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			w.Tick(tick)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			netServer.Shutdown()
			sessions.ForEach(func(s *gonet.Session) { s.Close() })
			log.Info("final scores", zap.Int32s("by_slot", scoresOf(w)))

			if persister != nil {
				stopSaves()
				<-persister.Done()
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				finishMatch(ctx, repo, persister, matchID, log)
				cancel()
			}
			log.Info("server stopped")
			return nil
		}
	}
}

// loadTuning layers the Lua tuning table and the [game] config section on
// top of the built-in defaults. Config wins over scripts.
func loadTuning(cfg *config.Config, log *zap.Logger) (rules.Tuning, error) {
	t := rules.Default()

	engine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return t, err
	}
	defer engine.Close()

	values, err := engine.Numbers("tuning")
	if err != nil {
		return t, err
	}
	if err := t.Apply(values); err != nil {
		return t, err
	}
	log.Debug("lua tuning applied", zap.Int("keys", len(values)))

	if cfg.Game.SeasonLength.Duration > 0 {
		t.SeasonLength = cfg.Game.SeasonLength.Duration
	}
	t.EggCooldownSeconds = cfg.Game.EggCooldownSeconds
	return t, nil
}

func finishMatch(ctx context.Context, repo *persist.MatchRepo, persister *system.PersistenceSystem, matchID uuid.UUID, log *zap.Logger) {
	if err := persister.SaveNow(ctx); err != nil {
		log.Error("final score save failed", zap.Error(err))
		return
	}
	if err := repo.FinishMatch(ctx, matchID, time.Now()); err != nil {
		log.Error("finish match failed", zap.Error(err))
		return
	}
	rows, err := repo.LoadScores(ctx, matchID)
	if err != nil {
		log.Error("read back scores failed", zap.Error(err))
		return
	}
	for _, r := range rows {
		log.Info("saved score", zap.Int16("slot", r.Slot), zap.Int32("client", r.ClientID), zap.Int32("points", r.Points))
	}
}

func scoresOf(w *world.World) []int32 {
	s := w.Scores()
	return s[:]
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
