package main

import (
	"testing"

	// Packages
	lmq "github.com/mutablelogic/go-lmq"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_Circle_ParseEntry(t *testing.T) {
	assert := assert.New(t)

	entry, err := parseEntry("0:x")
	assert.NoError(err)
	assert.Equal(schema.RotationEntry{Host: 0, Queue: "x", Active: true}, entry)

	entry, err = parseEntry("2:y:off")
	assert.NoError(err)
	assert.Equal(schema.RotationEntry{Host: 2, Queue: "y", Active: false}, entry)

	entry, err = parseEntry("1:z:on")
	assert.NoError(err)
	assert.True(entry.Active)

	for _, value := range []string{"", "x", "0:", "a:x", "0:x:maybe", "0:x:on:1"} {
		_, err := parseEntry(value)
		assert.ErrorIs(err, lmq.ErrBadParameter, value)
	}
}

func Test_Circle_Entries(t *testing.T) {
	assert := assert.New(t)

	flags := CircleFlags{Entries: []string{"0:x", "1:y:off"}}
	entries, err := flags.entries(&Globals{})
	assert.NoError(err)
	assert.Len(entries, 2)

	// No entries and no configuration file
	_, err = CircleFlags{}.entries(&Globals{})
	assert.ErrorIs(err, lmq.ErrBadParameter)
}
