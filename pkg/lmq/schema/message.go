package schema

import (
	"net/http"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is the envelope returned by a get operation
type Message struct {
	Host    int     `json:"host"`
	Uid     *string `json:"uid,omitempty"`
	Message string  `json:"message"`
}

// Content is the envelope returned by a fetch operation. Message is the
// raw message as stored in the queue (for example "file:images/a.png")
// and Content holds either the message text or the referenced file.
type Content struct {
	Host        int     `json:"host"`
	Uid         *string `json:"uid,omitempty"`
	Message     *string `json:"message,omitempty"`
	ContentType string  `json:"content_type,omitempty"`
	Content     []byte  `json:"content,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMessage returns a message envelope from a get response
func NewMessage(host int, header http.Header, body []byte) *Message {
	return &Message{
		Host:    host,
		Uid:     headerValue(header, HeaderUid),
		Message: string(body),
	}
}

// NewContent returns a content envelope from a fetch response
func NewContent(host int, header http.Header, body []byte) *Content {
	return &Content{
		Host:        host,
		Uid:         headerValue(header, HeaderUid),
		Message:     headerValue(header, HeaderMessage),
		ContentType: header.Get("Content-Type"),
		Content:     body,
	}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return stringify(m)
}

func (c Content) String() string {
	return stringify(c)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsFile returns true if the message references a file on the server
func (c Content) IsFile() bool {
	return c.Message != nil && strings.HasPrefix(*c.Message, FilePrefix)
}

// Path returns the file path of a file message, or an empty string
func (c Content) Path() string {
	if !c.IsFile() {
		return ""
	}
	return strings.TrimPrefix(*c.Message, FilePrefix)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// headerValue returns nil when the header is absent
func headerValue(header http.Header, key string) *string {
	values := header.Values(key)
	if len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}
