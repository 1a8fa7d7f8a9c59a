package consumer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	// Packages
	lmq "github.com/mutablelogic/go-lmq"
	consumer "github.com/mutablelogic/go-lmq/pkg/lmq/consumer"
	httpclient "github.com/mutablelogic/go-lmq/pkg/lmq/httpclient"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	test "github.com/mutablelogic/go-lmq/pkg/test"
	assert "github.com/stretchr/testify/assert"
)

////////////////////////////////////////////////////////////////////////////////
// CONSUMER TESTS

func Test_Consumer_New(t *testing.T) {
	assert := assert.New(t)
	client, err := httpclient.NewWithHost("http://localhost:3000")
	assert.NoError(err)

	t.Run("DefaultOptions", func(t *testing.T) {
		c, err := consumer.New(client)
		assert.NoError(err)
		assert.NotNil(c)
	})

	t.Run("WithWorkers", func(t *testing.T) {
		c, err := consumer.New(client, consumer.WithWorkers(4), consumer.WithFetch(true))
		assert.NoError(err)
		assert.NotNil(c)
	})

	t.Run("NilClient", func(t *testing.T) {
		_, err := consumer.New(nil)
		assert.ErrorIs(err, lmq.ErrBadParameter)
	})

	t.Run("InvalidWorkers", func(t *testing.T) {
		_, err := consumer.New(client, consumer.WithWorkers(0))
		assert.ErrorIs(err, consumer.ErrInvalidWorkers)
		assert.ErrorIs(err, lmq.ErrBadParameter)
	})

	t.Run("InvalidPeriod", func(t *testing.T) {
		_, err := consumer.New(client, consumer.WithPeriod(100*time.Microsecond))
		assert.ErrorIs(err, consumer.ErrInvalidPeriod)
	})
}

func Test_Consumer_RegisterQueue(t *testing.T) {
	assert := assert.New(t)
	client, err := httpclient.NewWithHost("http://localhost:3000")
	assert.NoError(err)
	c, err := consumer.New(client)
	assert.NoError(err)

	handler := func(ctx context.Context, content *schema.Content) error {
		return nil
	}

	assert.NoError(c.RegisterQueue("b", handler))
	assert.NoError(c.RegisterQueue("a", handler))
	assert.NoError(c.RegisterQueue("a", handler))
	assert.Equal([]string{"a", "b"}, c.Queues())

	assert.ErrorIs(c.RegisterQueue("", handler), lmq.ErrBadParameter)
	assert.ErrorIs(c.RegisterQueue("c", nil), lmq.ErrBadParameter)
}

func Test_Consumer_Run(t *testing.T) {
	assert := assert.New(t)

	server := test.NewServer()
	defer server.Close()

	client, err := httpclient.New([]string{server.URL, server.URL})
	assert.NoError(err)

	t.Run("NoQueues", func(t *testing.T) {
		c, err := consumer.New(client)
		assert.NoError(err)
		assert.ErrorIs(c.Run(context.Background()), lmq.ErrBadParameter)
	})

	t.Run("Dispatch", func(t *testing.T) {
		server.Put("emails", "a", "b", "c")

		c, err := consumer.New(client, consumer.WithWorkers(2), consumer.WithPeriod(10*time.Millisecond))
		assert.NoError(err)

		var mu sync.Mutex
		var received []string
		done := make(chan struct{})
		assert.NoError(c.RegisterQueue("emails", func(ctx context.Context, content *schema.Content) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, string(content.Content))
			assert.NotNil(content.Uid)
			if len(received) == 3 {
				close(done)
			}
			return nil
		}))

		// A missing queue is not an error
		assert.NoError(c.RegisterQueue("missing", func(ctx context.Context, content *schema.Content) error {
			return errors.New("unexpected message")
		}))

		ctx, cancel := context.WithCancel(context.Background())
		result := make(chan error, 1)
		go func() {
			result <- c.Run(ctx)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for messages")
		}
		cancel()
		assert.NoError(<-result)

		mu.Lock()
		defer mu.Unlock()
		assert.ElementsMatch([]string{"a", "b", "c"}, received)
		assert.Equal(0, server.Len("emails"))
	})

	t.Run("LaterMessages", func(t *testing.T) {
		server.Put("jobs")

		c, err := consumer.New(client, consumer.WithWorkers(1), consumer.WithPeriod(5*time.Millisecond))
		assert.NoError(err)

		received := make(chan string, 1)
		assert.NoError(c.RegisterQueue("jobs", func(ctx context.Context, content *schema.Content) error {
			received <- string(content.Content)
			return errors.New("handler errors do not stop the consumer")
		}))

		ctx, cancel := context.WithCancel(context.Background())
		result := make(chan error, 1)
		go func() {
			result <- c.Run(ctx)
		}()

		// Empty polls are tolerated, then the message arrives
		time.Sleep(20 * time.Millisecond)
		server.Put("jobs", "late")

		select {
		case value := <-received:
			assert.Equal("late", value)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for message")
		}
		cancel()
		assert.NoError(<-result)
	})

	t.Run("Fetch", func(t *testing.T) {
		server.PutFile("a.txt", []byte("file content"))
		server.Put("files", "file:a.txt")

		c, err := consumer.New(client, consumer.WithFetch(true), consumer.WithPeriod(5*time.Millisecond))
		assert.NoError(err)

		received := make(chan *schema.Content, 1)
		assert.NoError(c.RegisterQueue("files", func(ctx context.Context, content *schema.Content) error {
			received <- content
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		result := make(chan error, 1)
		go func() {
			result <- c.Run(ctx)
		}()

		select {
		case content := <-received:
			assert.True(content.IsFile())
			assert.Equal("a.txt", content.Path())
			assert.Equal([]byte("file content"), content.Content)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for message")
		}
		cancel()
		assert.NoError(<-result)
	})

	t.Run("RegisterWhileRunning", func(t *testing.T) {
		server.Put("register", "x")

		c, err := consumer.New(client, consumer.WithPeriod(5*time.Millisecond))
		assert.NoError(err)

		registerErr := make(chan error, 1)
		assert.NoError(c.RegisterQueue("register", func(ctx context.Context, content *schema.Content) error {
			registerErr <- c.RegisterQueue("other", func(context.Context, *schema.Content) error { return nil })
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		result := make(chan error, 1)
		go func() {
			result <- c.Run(ctx)
		}()

		select {
		case err := <-registerErr:
			assert.ErrorIs(err, lmq.ErrBadParameter)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for handler")
		}

		// Cannot run twice
		assert.ErrorIs(c.Run(ctx), lmq.ErrBadParameter)

		cancel()
		assert.NoError(<-result)
	})

	t.Run("PanicRecovered", func(t *testing.T) {
		server.Put("panics", "p", "q")

		c, err := consumer.New(client, consumer.WithWorkers(1), consumer.WithPeriod(5*time.Millisecond))
		assert.NoError(err)

		received := make(chan string, 2)
		assert.NoError(c.RegisterQueue("panics", func(ctx context.Context, content *schema.Content) error {
			received <- string(content.Content)
			panic("handler panic")
		}))

		ctx, cancel := context.WithCancel(context.Background())
		result := make(chan error, 1)
		go func() {
			result <- c.Run(ctx)
		}()

		for i := 0; i < 2; i++ {
			select {
			case <-received:
			case <-time.After(5 * time.Second):
				t.Fatal("timed out waiting for message")
			}
		}
		cancel()
		assert.NoError(<-result)
	})

	t.Run("HandlerOutlivesShutdown", func(t *testing.T) {
		server.Put("shutdown", "last")

		c, err := consumer.New(client, consumer.WithWorkers(1), consumer.WithPeriod(5*time.Millisecond))
		assert.NoError(err)

		started := make(chan struct{})
		release := make(chan struct{})
		handlerErr := make(chan error, 1)
		assert.NoError(c.RegisterQueue("shutdown", func(ctx context.Context, content *schema.Content) error {
			close(started)
			<-release
			handlerErr <- ctx.Err()
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		result := make(chan error, 1)
		go func() {
			result <- c.Run(ctx)
		}()

		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for handler")
		}

		// Stop polling while the handler is still running
		cancel()
		close(release)
		assert.NoError(<-result)
		assert.NoError(<-handlerErr)
	})
}
