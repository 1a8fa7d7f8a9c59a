package schema

import (
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// QueueList is the set of queue names reported by a host
type QueueList []string

// QueueCount is the number of messages in a queue on one host
type QueueCount struct {
	Host  int    `json:"host"`
	Queue string `json:"queue"`
	Count uint64 `json:"count"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ParseQueueList splits the text listing returned by the server, one queue
// name per line. Blank lines are dropped.
func ParseQueueList(text string) QueueList {
	result := make(QueueList, 0, strings.Count(text, "\n")+1)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (l QueueList) String() string {
	return stringify(l)
}

func (c QueueCount) String() string {
	return stringify(c)
}
