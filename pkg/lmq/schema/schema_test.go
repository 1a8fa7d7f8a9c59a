package schema_test

import (
	"net/http"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_Schema_ParseQueueList(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(schema.QueueList{"a", "b"}, schema.ParseQueueList("a\nb\n"))
	assert.Equal(schema.QueueList{"a", "b"}, schema.ParseQueueList("\r\na \r\n\n b"))
	assert.Empty(schema.ParseQueueList(""))
	assert.Empty(schema.ParseQueueList("\n\n"))
}

func Test_Schema_Message(t *testing.T) {
	assert := assert.New(t)

	t.Run("WithUid", func(t *testing.T) {
		header := http.Header{}
		header.Set("Uid", "123")
		message := schema.NewMessage(1, header, []byte("hello"))
		assert.Equal(1, message.Host)
		if assert.NotNil(message.Uid) {
			assert.Equal("123", *message.Uid)
		}
		assert.Equal("hello", message.Message)
		assert.Contains(message.String(), `"uid": "123"`)
	})

	t.Run("EmptyUid", func(t *testing.T) {
		header := http.Header{}
		header.Set("Uid", "")
		message := schema.NewMessage(0, header, nil)
		if assert.NotNil(message.Uid) {
			assert.Equal("", *message.Uid)
		}
	})

	t.Run("NoUid", func(t *testing.T) {
		message := schema.NewMessage(0, http.Header{}, []byte("hello"))
		assert.Nil(message.Uid)
		assert.NotContains(message.String(), "uid")
	})
}

func Test_Schema_Content(t *testing.T) {
	assert := assert.New(t)

	t.Run("File", func(t *testing.T) {
		header := http.Header{}
		header.Set("Uid", "1")
		header.Set("Message", "file:images/a.png")
		header.Set("Content-Type", "image/png")
		content := schema.NewContent(2, header, []byte{0x89, 'P', 'N', 'G'})
		assert.Equal(2, content.Host)
		assert.True(content.IsFile())
		assert.Equal("images/a.png", content.Path())
		assert.Equal("image/png", content.ContentType)
	})

	t.Run("Text", func(t *testing.T) {
		content := schema.NewContent(0, http.Header{}, []byte("hello"))
		assert.Nil(content.Message)
		assert.False(content.IsFile())
		assert.Equal("", content.Path())
		assert.Equal([]byte("hello"), content.Content)
	})
}

func Test_Schema_RotationList(t *testing.T) {
	assert := assert.New(t)

	list := schema.RotationList{
		{Host: 0, Queue: "x", Active: true},
		{Host: 1, Queue: "y", Active: false},
	}
	assert.True(list.IsActive(0))
	assert.False(list.IsActive(1))
	assert.False(list.IsActive(2))
	assert.False(list.IsActive(-1))
}
