package schema

import (
	"time"

	// Packages
	json "github.com/goccy/go-json"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultHost    = "http://localhost:3000"
	DefaultTimeout = 30 * time.Second
	PollPeriod     = time.Second

	// CompatibleVersion is the server version this client was written against
	CompatibleVersion = "1.2.0"
)

// Response headers carrying message metadata
const (
	HeaderUid     = "Uid"
	HeaderMessage = "Message"
)

// Path segments of the queue endpoints
const (
	PathHelp     = "help"
	PathList     = "list"
	PathCount    = "count"
	PathSkip     = "skip"
	PathSet      = "set"
	PathGet      = "get"
	PathFetch    = "fetch"
	PathDownload = "download"
	PathDelete   = "delete"
	PathVersion  = "version"
)

// FilePrefix marks a message whose content is a file on the server
const FilePrefix = "file:"

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func stringify[T any](v T) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
