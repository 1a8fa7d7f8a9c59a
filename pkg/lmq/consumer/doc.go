/*
Package consumer polls one or more queues through the round-robin client
and dispatches each message to a handler on a fixed pool of workers.

	client, err := httpclient.New(hosts)
	if err != nil {
	   panic(err)
	}
	consumer, err := consumer.New(client, consumer.WithWorkers(4))
	if err != nil {
	   panic(err)
	}
	consumer.RegisterQueue("emails", func(ctx context.Context, content *schema.Content) error {
	   return send(ctx, content.Content)
	})
	err = consumer.Run(ctx)

Queues are drained on each poll. When every host reports a queue as empty
or missing the consumer waits one period before polling it again. A
message read before shutdown is still handed to its handler, and Run
returns once every handler has returned.
*/
package consumer
