package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	// Packages
	httpclient "github.com/mutablelogic/go-lmq/pkg/lmq/httpclient"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	prometheus "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Collector reports the depth of every queue on every host of a client
type Collector struct {
	client        *httpclient.Client
	timeout       time.Duration
	queueMessages *prometheus.Desc
	hostUp        *prometheus.Desc
}

type sample struct {
	host  int
	queue string
	count uint64
}

///////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	scrapeTimeout = 30 * time.Second
	scrapeLimit   = 8
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewCollector returns a prometheus collector for the hosts of the client.
// The client must be non-nil.
func NewCollector(client *httpclient.Client) *Collector {
	if client == nil {
		panic("client is nil")
	}
	return &Collector{
		client:  client,
		timeout: scrapeTimeout,
		queueMessages: prometheus.NewDesc(
			"lmq_queue_messages",
			"Number of messages in each queue",
			[]string{"host", "queue"}, nil,
		),
		hostUp: prometheus.NewDesc(
			"lmq_host_up",
			"Whether the queue list could be read from the host",
			[]string{"host"}, nil,
		),
	}
}

// Handler returns a HTTP handler serving the metrics of the client hosts
// from a private registry
func Handler(client *httpclient.Client) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(client))
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.ServeHTTP(w, r)
		default:
			_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	})
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - COLLECTOR

// Describe sends metric descriptors to the channel
func (m *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.queueMessages
	ch <- m.hostUp
}

// Collect lists and counts the queues on each host concurrently and sends
// the metrics to the channel
func (m *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	hosts := m.client.Hosts()
	var mu sync.Mutex
	var samples []sample
	up := make([]bool, len(hosts))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(scrapeLimit)
	for host := range hosts {
		g.Go(func() error {
			result, err := m.collectHost(gCtx, host)
			if err != nil {
				// A host which is down is reported, not returned
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			up[host] = true
			samples = append(samples, result...)
			return nil
		})
	}
	_ = g.Wait()

	// Send metrics
	for host, value := range up {
		ch <- prometheus.MustNewConstMetric(m.hostUp, prometheus.GaugeValue, boolValue(value), hosts[host])
	}
	for _, s := range samples {
		ch <- prometheus.MustNewConstMetric(m.queueMessages, prometheus.GaugeValue, float64(s.count), hosts[s.host], s.queue)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// collectHost counts every queue on a host. A queue which disappears
// between the list and the count is skipped.
func (m *Collector) collectHost(ctx context.Context, host int) ([]sample, error) {
	queues, err := m.client.ListQueues(ctx, httpclient.WithHost(host))
	if err != nil {
		return nil, err
	}
	result := make([]sample, 0, len(queues))
	for _, queue := range queues {
		count, err := m.client.Count(ctx, queue, httpclient.WithHost(host))
		if err != nil {
			continue
		}
		result = append(result, sample{host: host, queue: queue, count: count})
	}
	return result, nil
}

func boolValue(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
