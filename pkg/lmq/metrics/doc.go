// Package metrics exports the depth of every queue on a set of hosts as
// prometheus gauges:
//
//	lmq_queue_messages{host,queue}
//	lmq_host_up{host}
package metrics
