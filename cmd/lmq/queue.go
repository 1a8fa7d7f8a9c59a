package main

import (
	"fmt"

	// Packages
	httpclient "github.com/mutablelogic/go-lmq/pkg/lmq/httpclient"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type QueueCommands struct {
	Help          HelpCommand          `cmd:"" name:"help" help:"Print the server help text." group:"QUEUE"`
	ServerVersion ServerVersionCommand `cmd:"" name:"server-version" help:"Print the server version." group:"QUEUE"`
	ListQueues    ListQueuesCommand    `cmd:"" name:"queues" help:"List queues." group:"QUEUE"`
	Count         CountCommand         `cmd:"" name:"count" help:"Count messages in a queue." group:"QUEUE"`
	Skip          SkipCommand          `cmd:"" name:"skip" help:"Move messages from the front to the back of a queue." group:"QUEUE"`
	Delete        DeleteCommand        `cmd:"" name:"delete" help:"Delete a queue." group:"QUEUE"`
}

// HostFlag pins a command to one host
type HostFlag struct {
	On *int `name:"on" help:"Index of the host to use (default is the first host, or round-robin for get and fetch)"`
}

type HelpCommand struct {
	HostFlag
}

type ServerVersionCommand struct {
	HostFlag
}

type ListQueuesCommand struct {
	HostFlag
}

type CountCommand struct {
	HostFlag
	Queue string `arg:"" name:"queue" help:"Queue name"`
}

type SkipCommand struct {
	HostFlag
	Queue  string `arg:"" name:"queue" help:"Queue name"`
	Number uint64 `arg:"" name:"number" help:"Number of messages to skip"`
}

type DeleteCommand struct {
	HostFlag
	Queue string `arg:"" name:"queue" help:"Queue name"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *HelpCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("HelpCommand")
	defer func() { endSpan(err) }()

	// Get help text
	text, err := client.Help(parent, cmd.opts()...)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(text)
	return nil
}

func (cmd *ServerVersionCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("ServerVersionCommand")
	defer func() { endSpan(err) }()

	// Get version
	version, err := client.Version(parent, cmd.opts()...)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(version)
	return nil
}

func (cmd *ListQueuesCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("ListQueuesCommand")
	defer func() { endSpan(err) }()

	// List queues
	queues, err := client.ListQueues(parent, cmd.opts()...)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(queues)
	return nil
}

func (cmd *CountCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("CountCommand", attribute.String("queue", cmd.Queue))
	defer func() { endSpan(err) }()

	// Count messages
	count, err := client.Count(parent, cmd.Queue, cmd.opts()...)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(schema.QueueCount{
		Host:  cmd.host(),
		Queue: cmd.Queue,
		Count: count,
	})
	return nil
}

func (cmd *SkipCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("SkipCommand", attribute.String("queue", cmd.Queue))
	defer func() { endSpan(err) }()

	// Skip messages
	return client.Skip(parent, cmd.Queue, cmd.Number, cmd.opts()...)
}

func (cmd *DeleteCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("DeleteCommand", attribute.String("queue", cmd.Queue))
	defer func() { endSpan(err) }()

	// Delete queue
	return client.Delete(parent, cmd.Queue, cmd.opts()...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (flag HostFlag) opts() []httpclient.Opt {
	if flag.On == nil {
		return nil
	}
	return []httpclient.Opt{httpclient.WithHost(*flag.On)}
}

func (flag HostFlag) host() int {
	if flag.On == nil {
		return 0
	}
	return *flag.On
}
