// Package test provides an in-memory queue server for tests of the client
// packages.
package test
