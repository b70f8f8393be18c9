package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/sanonone/kektorpath/internal/config"
	"github.com/sanonone/kektorpath/internal/logging"
	"github.com/sanonone/kektorpath/internal/protocol"
	"github.com/sanonone/kektorpath/internal/server"
	"github.com/sanonone/kektorpath/pkg/engine"
	"github.com/sanonone/kektorpath/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file (defaults are used when empty)")
	httpAddr := flag.String("http-addr", "", "Override server.http_addr from the configuration")
	repl := flag.Bool("repl", false, "Read commands from stdin instead of serving HTTP")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *httpAddr != "" {
		cfg.Server.HTTPAddr = *httpAddr
	}

	logger := logging.New("kektorpath", cfg.Log)

	opts := engine.DefaultOptions()
	opts.MapPath = cfg.Map.Path
	opts.DoorsOpen = cfg.Map.DoorsOpen
	opts.Solver = cfg.Solver.PatherOptions()
	opts.Logger = logger
	if cfg.Server.MetricsEnabled {
		opts.Solver.Observer = metrics.SolverObserver{}
	}
	eng, err := engine.Open(opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open engine")
	}

	if *repl {
		runREPL(protocol.NewDispatcher(eng), os.Stdin, os.Stdout, logger)
		return
	}

	srv := server.NewServer(eng, server.Options{
		Addr:           cfg.Server.HTTPAddr,
		MCPEnabled:     cfg.Server.MCPEnabled,
		MetricsEnabled: cfg.Server.MetricsEnabled,
		Logger:         logger,
	})

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case sig := <-shutdownChan:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		srv.Shutdown()
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}
}

// runREPL executes one command per input line until EOF or QUIT.
func runREPL(d *protocol.Dispatcher, in io.Reader, out io.Writer, logger zerolog.Logger) {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		cmd, err := protocol.Parse(sc.Text())
		if err != nil {
			continue
		}
		if cmd.Name == "QUIT" || cmd.Name == "EXIT" {
			break
		}
		reply, err := d.Execute(cmd)
		if err != nil {
			fmt.Fprintf(out, "ERR %v\n", err)
			continue
		}
		fmt.Fprintln(out, reply)
	}
	if err := sc.Err(); err != nil {
		logger.Error().Err(err).Msg("reading stdin")
	}
}
