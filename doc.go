// Package lmq holds the pieces shared by the Lightweight Message Queue
// client packages: error codes and the round-robin rotation order used
// when a read is spread over several hosts or queue entries.
//
// The client itself lives in pkg/lmq/httpclient:
//
//	client, err := httpclient.New([]string{"http://a:3000", "http://b:3000"})
//	if err != nil {
//	   panic(err)
//	}
//	message, err := client.Get(ctx, "emails")
package lmq
