package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	// Packages
	metrics "github.com/mutablelogic/go-lmq/pkg/lmq/metrics"
	version "github.com/mutablelogic/go-lmq/pkg/version"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ServerCommands struct {
	Exporter ExporterCommand `cmd:"" name:"exporter" help:"Serve prometheus metrics for the queue hosts." group:"SERVER"`
}

type ExporterCommand struct {
	Addr string `name:"addr" env:"LMQ_EXPORTER_ADDR" help:"HTTP Listen address" default:":9090"`
	Path string `name:"path" help:"Metrics path" default:"/metrics"`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ExporterCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// Register HTTP handlers
	router := http.NewServeMux()
	router.Handle(cmd.Path, metrics.Handler(client))

	// Create a TLS config
	var tlsconfig *tls.Config
	if cmd.TLS.CertFile != "" || cmd.TLS.KeyFile != "" {
		tlsconfig, err = httpserver.TLSConfig(cmd.TLS.ServerName, true, cmd.TLS.CertFile, cmd.TLS.KeyFile)
		if err != nil {
			return err
		}
	}

	// Create a HTTP server
	server, err := httpserver.New(cmd.Addr, router, tlsconfig)
	if err != nil {
		return err
	}

	// Run until interrupted
	fmt.Println(version.ExecName(), version.Version())
	fmt.Println("...listening on", cmd.Addr+cmd.Path, "for", client.Hosts())
	if err := server.Run(ctx.ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}

	// Terminated message
	fmt.Println(version.ExecName(), "terminated")
	return nil
}
