package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/hammamikhairi/ottotimer/internal/audio"
	"github.com/hammamikhairi/ottotimer/internal/config"
	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
	"github.com/hammamikhairi/ottotimer/internal/notify"
	"github.com/hammamikhairi/ottotimer/internal/timeinput"
	"github.com/hammamikhairi/ottotimer/internal/timer"
)

// app holds what every command needs.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	alarm    domain.Alarm
	closeLog func()
}

// setup loads the config, applies flag overrides, opens the log and
// builds the alarm.
func setup(g *Globals) (*app, error) {
	path := g.Config
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, g)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.Level()
	if g.Verbose {
		level = logger.LevelVerbose
	}
	if g.Quiet {
		level = logger.LevelOff
	}

	logOut, closeLog := openLog(cfg.LogFile)

	// Third-party packages log through the standard logger; keep them off
	// the terminal too.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(level, logOut)
	log.Debug("config loaded from %q", path)

	a := &app{cfg: cfg, log: log, closeLog: closeLog}
	a.alarm = a.buildAlarm()
	return a, nil
}

func applyFlags(cfg *config.Config, g *Globals) {
	if g.Alarm != "" {
		cfg.Alarm = g.Alarm
	}
	if g.Volume != nil {
		cfg.Volume = *g.Volume
	}
	if g.Mute {
		cfg.Mute = true
	}
	if g.NoDesktop {
		cfg.DesktopNotify = false
	}
	if g.LogFile != "" {
		cfg.LogFile = g.LogFile
	}
}

// openLog directs logs to a file by default so the terminal stays clean.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

func (a *app) buildAlarm() domain.Alarm {
	if a.cfg.Mute {
		a.log.Info("alarm muted")
		return audio.NewNoOp(a.log.Named("alarm"))
	}

	alarmLog := a.log.Named("alarm")
	al := audio.NewAlarm(alarmLog,
		audio.WithSoundFile(a.cfg.Alarm),
		audio.WithVolume(a.cfg.Volume),
		audio.WithLeadIn(a.cfg.LeadIn),
		audio.WithCache(audio.NewSoundCache(audio.DefaultCacheSize, alarmLog.Named("cache"))),
	)
	if err := al.Preload(); err != nil {
		a.log.Warn("alarm sound: %v", err)
	}
	return al
}

// notifier wraps base with desktop notifications when enabled.
func (a *app) notifier(base domain.Notifier) domain.Notifier {
	if !a.cfg.DesktopNotify {
		return base
	}
	return notify.NewDesktop(base, a.log.Named("desktop"))
}

// machine builds the timer. override, when non-empty, replaces the
// configured duration.
func (a *app) machine(notifier domain.Notifier, override string) (*timer.Machine, error) {
	d, err := a.cfg.WaitDuration()
	if err != nil {
		return nil, err
	}
	if override != "" {
		if d, err = timeinput.ParseDuration(override); err != nil {
			return nil, err
		}
	}

	return timer.New(a.alarm, notifier, a.log.Named("machine"),
		timer.WithDuration(d),
		timer.WithTickInterval(a.cfg.TickInterval),
		timer.WithRingTimeout(a.cfg.RingTimeout),
	), nil
}

// shutdown silences the alarm and closes the log.
func (a *app) shutdown() {
	a.alarm.Stop()
	a.log.Info("bye")
	a.closeLog()
}

// ringCheckInterval bounds how late the ring timeout is noticed.
func (a *app) ringCheckInterval() time.Duration {
	if a.cfg.RingTimeout > 0 && a.cfg.RingTimeout < time.Second {
		return a.cfg.RingTimeout
	}
	return time.Second
}
