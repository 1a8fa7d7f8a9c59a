package main

import (
	"fmt"
	"strconv"
	"strings"

	// Packages
	lmq "github.com/mutablelogic/go-lmq"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type CircleCommands struct {
	CircleGet   CircleGetCommand   `cmd:"" name:"circle-get" help:"Get messages rotating over (host, queue) entries." group:"ROTATION"`
	CircleFetch CircleFetchCommand `cmd:"" name:"circle-fetch" help:"Fetch messages rotating over (host, queue) entries." group:"ROTATION"`
}

type CircleFlags struct {
	Entries []string `name:"entry" short:"e" help:"Rotation entry as <host>:<queue>, or <host>:<queue>:off for an inactive entry. Defaults to the rotation in the configuration file"`
	Cursor  int      `name:"cursor" help:"Index of the entry used last, or -1 to start with the first entry" default:"-1"`
	Count   uint     `name:"count" short:"n" help:"Number of messages to read" default:"1"`
}

type CircleGetCommand struct {
	CircleFlags
}

type CircleFetchCommand struct {
	CircleFlags
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *CircleGetCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	entries, err := cmd.entries(ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("CircleGetCommand", attribute.Int("entries", len(entries)))
	defer func() { endSpan(err) }()

	// Read messages, passing the cursor on to the next call
	cursor := cmd.Cursor
	for i := uint(0); i < cmd.Count; i++ {
		var message *schema.Message
		cursor, message, err = client.CircleGet(parent, entries, cursor)
		if err != nil {
			return fmt.Errorf("entry %d: %w", cursor, err)
		}
		fmt.Println(message)
	}
	return nil
}

func (cmd *CircleFetchCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	entries, err := cmd.entries(ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("CircleFetchCommand", attribute.Int("entries", len(entries)))
	defer func() { endSpan(err) }()

	// Read messages, passing the cursor on to the next call
	cursor := cmd.Cursor
	for i := uint(0); i < cmd.Count; i++ {
		var content *schema.Content
		cursor, content, err = client.CircleFetch(parent, entries, cursor)
		if err != nil {
			return fmt.Errorf("entry %d: %w", cursor, err)
		}
		fmt.Println(content)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// entries returns the entries given on the command line, or else the
// rotation from the configuration file
func (flags CircleFlags) entries(ctx *Globals) (schema.RotationList, error) {
	if len(flags.Entries) == 0 {
		cfg, err := ctx.LoadConfig()
		if err != nil {
			return nil, err
		}
		if cfg == nil || len(cfg.Rotation) == 0 {
			return nil, lmq.ErrBadParameter.With("no rotation entries, use --entry or a configuration file")
		}
		return cfg.Rotation, nil
	}
	result := make(schema.RotationList, 0, len(flags.Entries))
	for _, value := range flags.Entries {
		entry, err := parseEntry(value)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}

func parseEntry(value string) (schema.RotationEntry, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[1] == "" {
		return schema.RotationEntry{}, lmq.ErrBadParameter.Withf("invalid entry %q", value)
	}
	host, err := strconv.Atoi(parts[0])
	if err != nil {
		return schema.RotationEntry{}, lmq.ErrBadParameter.Withf("invalid entry %q: %v", value, err)
	}
	entry := schema.RotationEntry{Host: host, Queue: parts[1], Active: true}
	if len(parts) == 3 {
		switch parts[2] {
		case "on":
		case "off":
			entry.Active = false
		default:
			return schema.RotationEntry{}, lmq.ErrBadParameter.Withf("invalid entry %q", value)
		}
	}
	return entry, nil
}
