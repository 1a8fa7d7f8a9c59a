package main

import (
	"fmt"
	"os"

	// Packages
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MessageCommands struct {
	Set      SetCommand      `cmd:"" name:"set" help:"Append a message to a queue." group:"MESSAGE"`
	Get      GetCommand      `cmd:"" name:"get" help:"Remove and print the next message in a queue." group:"MESSAGE"`
	Fetch    FetchCommand    `cmd:"" name:"fetch" help:"Remove the next message in a queue and print or save its content." group:"MESSAGE"`
	Download DownloadCommand `cmd:"" name:"download" help:"Download the content of a message without removing it." group:"MESSAGE"`
}

type SetCommand struct {
	HostFlag
	Queue   string `arg:"" name:"queue" help:"Queue name"`
	Message string `arg:"" name:"message" help:"Message, or file:<path> to reference a file on the server"`
}

type GetCommand struct {
	HostFlag
	Queue string `arg:"" name:"queue" help:"Queue name"`
}

type FetchCommand struct {
	HostFlag
	Queue  string `arg:"" name:"queue" help:"Queue name"`
	Output string `name:"output" short:"o" type:"path" help:"Write the content to a file"`
}

type DownloadCommand struct {
	HostFlag
	Message string `arg:"" name:"message" help:"Message, or file:<path>"`
	Output  string `name:"output" short:"o" type:"path" help:"Write the content to a file"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *SetCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("SetCommand", attribute.String("queue", cmd.Queue))
	defer func() { endSpan(err) }()

	// Set message
	return client.Set(parent, cmd.Queue, cmd.Message, cmd.opts()...)
}

func (cmd *GetCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("GetCommand", attribute.String("queue", cmd.Queue))
	defer func() { endSpan(err) }()

	// Get message
	message, err := client.Get(parent, cmd.Queue, cmd.opts()...)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(message)
	return nil
}

func (cmd *FetchCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("FetchCommand", attribute.String("queue", cmd.Queue))
	defer func() { endSpan(err) }()

	// Fetch message
	content, err := client.Fetch(parent, cmd.Queue, cmd.opts()...)
	if err != nil {
		return err
	}

	// Save the content, or print the envelope
	if cmd.Output != "" {
		return writeFile(cmd.Output, content.Content)
	}
	fmt.Println(content)
	return nil
}

func (cmd *DownloadCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("DownloadCommand", attribute.String("message", cmd.Message))
	defer func() { endSpan(err) }()

	// Download content
	data, err := client.Download(parent, cmd.Message, cmd.opts()...)
	if err != nil {
		return err
	}

	// Save or write to stdout
	if cmd.Output != "" {
		return writeFile(cmd.Output, data)
	}
	_, err = os.Stdout.Write(data)
	return err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "wrote", len(data), "bytes to", path)
	return nil
}
