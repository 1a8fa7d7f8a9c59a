package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Packages
	consumer "github.com/mutablelogic/go-lmq/pkg/lmq/consumer"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	version "github.com/mutablelogic/go-lmq/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ConsumeCommands struct {
	Consume ConsumeCommand `cmd:"" name:"consume" help:"Poll queues and print each message until interrupted." group:"CONSUMER"`
}

type ConsumeCommand struct {
	Queues  []string      `arg:"" name:"queue" help:"Queue names"`
	Workers int           `name:"workers" help:"Number of concurrent handlers" default:"1"`
	Period  time.Duration `name:"period" help:"Wait between polls of an empty queue" default:"1s"`
	Fetch   bool          `name:"fetch" help:"Fetch file content instead of getting the message"`
	Output  string        `name:"output" short:"o" type:"existingdir" help:"Write each content to a file in this directory, named by uid"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ConsumeCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// Create the consumer
	c, err := consumer.New(client,
		consumer.WithWorkers(cmd.Workers),
		consumer.WithPeriod(cmd.Period),
		consumer.WithFetch(cmd.Fetch),
		consumer.WithLogger(ctx.log),
		consumer.WithTracer(ctx.tracer),
	)
	if err != nil {
		return err
	}
	for _, queue := range cmd.Queues {
		if err := c.RegisterQueue(queue, cmd.handler()); err != nil {
			return err
		}
	}

	// Run until interrupted
	fmt.Fprintln(os.Stderr, version.ExecName(), version.Version(), "consuming", cmd.Queues, "from", client.Hosts())
	if err := c.Run(ctx.ctx); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, version.ExecName(), "terminated")
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *ConsumeCommand) handler() consumer.Handler {
	return func(ctx context.Context, content *schema.Content) error {
		if cmd.Output == "" || content.Uid == nil {
			fmt.Println(content)
			return nil
		}
		return writeFile(filepath.Join(cmd.Output, *content.Uid), content.Content)
	}
}
