package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/config"
	"github.com/domino14/wordlebits/shell"
)

var (
	GitVersion string
)

const banner = `wordlebits: how much does each guess tell you?`

// consoleLogger writes human-readable log lines to stderr.
func consoleLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i any) string {
		return fmt.Sprint(i)
	}
	output.FormatFieldName = func(i any) string {
		return fmt.Sprintf("%s:", i)
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// startCPUProfile returns the function that stops the profile.
func startCPUProfile(path string) func() {
	f, err := os.Create(path)
	if err != nil {
		panic("could not create CPU profile: " + err.Error())
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		panic("could not start CPU profile: " + err.Error())
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}

func writeHeapProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		panic("could not create memory profile: " + err.Error())
	}
	defer f.Close()
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	log.Info().Uint64("heap-alloc", ms.HeapAlloc).Uint32("num-gc", ms.NumGC).Msg("memory-stats")
	if err := pprof.WriteHeapProfile(f); err != nil {
		panic("could not write memory profile: " + err.Error())
	}
	log.Info().Str("path", path).Msg("wrote-memory-profile")
}

func main() {
	// Word lists given with a relative path are looked up next to the
	// executable.
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	rest, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)

	logger := consoleLogger(cfg.GetBool(config.ConfigDebug))
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	log.Debug().Str("executable", exPath).Interface("settings", cfg.AllSettings()).Msg("loaded-config")

	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		defer startCPUProfile(p)()
	}

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Debug().Msg("got quit signal...")
		close(done)
	}()

	sc := shell.NewShellController(cfg, exPath, GitVersion)
	// Anything after the flags is one command to run before exiting.
	if line := strings.TrimSpace(shellquote.Join(rest...)); line != "" {
		sc.Execute(sig, line)
		sig <- syscall.SIGINT
	} else {
		fmt.Println(banner)
		if GitVersion != "" {
			fmt.Println(GitVersion)
		}
		go sc.Loop(sig)
	}

	<-done

	if p := cfg.GetString(config.ConfigMemProfile); p != "" {
		writeHeapProfile(p)
	}
	sc.Cleanup()
}
