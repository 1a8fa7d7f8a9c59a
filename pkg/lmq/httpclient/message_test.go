package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	httpclient "github.com/mutablelogic/go-lmq/pkg/lmq/httpclient"
	test "github.com/mutablelogic/go-lmq/pkg/test"
	assert "github.com/stretchr/testify/assert"
)

func Test_Client_Get(t *testing.T) {
	assert := assert.New(t)

	t.Run("WithUid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Uid", "1528300000000000000")
			w.Write([]byte("hello"))
		}))
		defer server.Close()

		client, err := httpclient.NewWithHost(server.URL)
		assert.NoError(err)

		message, err := client.Get(context.Background(), "q")
		assert.NoError(err)
		if assert.NotNil(message) {
			assert.Equal(0, message.Host)
			assert.Equal("hello", message.Message)
			if assert.NotNil(message.Uid) {
				assert.Equal("1528300000000000000", *message.Uid)
			}
		}
	})

	t.Run("WithoutUid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("hello"))
		}))
		defer server.Close()

		client, err := httpclient.NewWithHost(server.URL)
		assert.NoError(err)

		message, err := client.Get(context.Background(), "q")
		assert.NoError(err)
		assert.Nil(message.Uid)
	})

	t.Run("PinnedHostAnnotated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("hello"))
		}))
		defer server.Close()

		client, err := httpclient.New([]string{server.URL, server.URL})
		assert.NoError(err)

		message, err := client.Get(context.Background(), "q", httpclient.WithHost(1))
		assert.NoError(err)
		assert.Equal(1, message.Host)
		assert.Equal(-1, client.Cursor())
	})
}

func Test_Client_Fetch(t *testing.T) {
	assert := assert.New(t)

	t.Run("Text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Uid", "1")
			w.Write([]byte("hello"))
		}))
		defer server.Close()

		client, err := httpclient.NewWithHost(server.URL)
		assert.NoError(err)

		content, err := client.Fetch(context.Background(), "q")
		assert.NoError(err)
		assert.Equal("1", *content.Uid)
		assert.Nil(content.Message)
		assert.False(content.IsFile())
		assert.Equal([]byte("hello"), content.Content)
	})

	t.Run("File", func(t *testing.T) {
		data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Uid", "2")
			w.Header().Set("Message", "file:images/a.png")
			w.Header().Set("Content-Type", "image/png")
			w.Write(data)
		}))
		defer server.Close()

		client, err := httpclient.NewWithHost(server.URL)
		assert.NoError(err)

		content, err := client.Fetch(context.Background(), "q")
		assert.NoError(err)
		assert.Equal("file:images/a.png", *content.Message)
		assert.True(content.IsFile())
		assert.Equal("images/a.png", content.Path())
		assert.Equal("image/png", content.ContentType)
		assert.Equal(data, content.Content)
	})
}

func Test_Client_Server(t *testing.T) {
	assert := assert.New(t)

	server := test.NewServer()
	defer server.Close()

	client, err := httpclient.NewWithHost(server.URL)
	assert.NoError(err)
	ctx := context.Background()

	t.Run("SetGet", func(t *testing.T) {
		assert.NoError(client.Set(ctx, "emails", "one"))
		assert.NoError(client.Set(ctx, "emails", "two"))

		count, err := client.Count(ctx, "emails")
		assert.NoError(err)
		assert.Equal(uint64(2), count)

		message, err := client.Get(ctx, "emails")
		assert.NoError(err)
		assert.Equal("one", message.Message)
		assert.NotNil(message.Uid)
	})

	t.Run("Skip", func(t *testing.T) {
		server.Put("rotate", "a", "b", "c")
		assert.NoError(client.Skip(ctx, "rotate", 2))

		message, err := client.Get(ctx, "rotate")
		assert.NoError(err)
		assert.Equal("c", message.Message)
	})

	t.Run("FetchFile", func(t *testing.T) {
		server.PutFile("docs/a.txt", []byte("file content"))
		assert.NoError(client.Set(ctx, "files", "file:docs/a.txt"))

		content, err := client.Fetch(ctx, "files")
		assert.NoError(err)
		assert.Equal("docs/a.txt", content.Path())
		assert.Equal([]byte("file content"), content.Content)

		data, err := client.Download(ctx, "file:docs/a.txt")
		assert.NoError(err)
		assert.Equal([]byte("file content"), data)
	})

	t.Run("Empty", func(t *testing.T) {
		server.Put("empty")
		_, err := client.Get(ctx, "empty")
		var protocolErr *httpclient.ProtocolError
		assert.ErrorAs(err, &protocolErr)
		assert.Equal(http.StatusGone, protocolErr.StatusCode)
	})

	t.Run("Delete", func(t *testing.T) {
		server.Put("gone", "x")
		assert.NoError(client.Delete(ctx, "gone"))
		assert.Equal(-1, server.Len("gone"))

		queues, err := client.ListQueues(ctx)
		assert.NoError(err)
		assert.NotContains(queues, "gone")
	})

	t.Run("Version", func(t *testing.T) {
		version, err := client.Version(ctx)
		assert.NoError(err)
		assert.Equal(test.Version, version)
	})
}
