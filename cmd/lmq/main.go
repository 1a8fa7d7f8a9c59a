package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	config "github.com/mutablelogic/go-lmq/pkg/config"
	httpclient "github.com/mutablelogic/go-lmq/pkg/lmq/httpclient"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	version "github.com/mutablelogic/go-lmq/pkg/version"
	server "github.com/mutablelogic/go-server"
	logger "github.com/mutablelogic/go-server/pkg/logger"
	otelapi "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debug option
	Debug   bool             `name:"debug" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Print version and exit"`

	// Client options
	Hosts   []string       `name:"host" env:"LMQ_HOSTS" help:"Queue server URL, repeat for round-robin over several hosts"`
	Timeout *time.Duration `name:"timeout" help:"Request timeout"`
	Config  string         `name:"config" type:"existingfile" env:"LMQ_CONFIG" help:"YAML configuration file"`

	// Private fields
	ctx    context.Context
	cancel context.CancelFunc
	tracer trace.Tracer
	log    server.Logger
	config *config.Config
}

type CLI struct {
	Globals
	QueueCommands
	MessageCommands
	CircleCommands
	ConsumeCommands
	ServerCommands
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func main() {
	cli := new(CLI)
	ctx := kong.Parse(cli,
		kong.Name("lmq"),
		kong.Description("Lightweight Message Queue command line interface"),
		kong.Vars{
			"version": VersionJSON(),
		},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	// Create the context and cancel function
	cli.Globals.ctx, cli.Globals.cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cli.Globals.cancel()

	// Logger and tracer
	cli.Globals.log = logger.New(os.Stderr, logger.Text, cli.Globals.Debug)
	cli.Globals.tracer = otelapi.Tracer(version.ExecName())

	// Call the Run() method of the selected parsed command.
	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Client returns a client for the hosts and timeout given on the command
// line, falling back to the configuration file and then the default host
func (g *Globals) Client() (*httpclient.Client, error) {
	cfg, err := g.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Hosts
	hosts := g.Hosts
	if len(hosts) == 0 && cfg != nil {
		hosts = cfg.Hosts
	}
	if len(hosts) == 0 {
		hosts = []string{schema.DefaultHost}
	}

	// Client options
	opts := []httpclient.ClientOpt{
		httpclient.OptTracer(g.tracer),
		httpclient.OptLogger(g.log),
	}
	if g.Timeout != nil {
		opts = append(opts, httpclient.OptTimeout(*g.Timeout))
	} else if cfg != nil && cfg.Timeout > 0 {
		opts = append(opts, httpclient.OptTimeout(cfg.Timeout.Duration()))
	}
	if cfg != nil && cfg.UserAgent != "" {
		opts = append(opts, httpclient.OptUserAgent(cfg.UserAgent))
	}
	if g.Debug {
		opts = append(opts, httpclient.OptTrace(os.Stderr, true))
	}

	// Create a client
	return httpclient.New(hosts, opts...)
}

// LoadConfig returns the configuration file, or nil if none was given
func (g *Globals) LoadConfig() (*config.Config, error) {
	if g.config != nil || g.Config == "" {
		return g.config, nil
	}
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.Config, err)
	}
	g.config = cfg
	return cfg, nil
}

// StartSpan starts a span for a command
func (g *Globals) StartSpan(name string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	return otel.StartSpan(g.tracer, g.ctx, "lmq.cmd."+name, attrs...)
}
