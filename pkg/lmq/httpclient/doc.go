// Package httpclient provides a typed Go client for a Lightweight Message
// Queue server, over one or more hosts.
//
// Create a client with:
//
//	client, err := httpclient.New([]string{"http://localhost:3000", "http://localhost:3001"})
//	if err != nil {
//	   panic(err)
//	}
//
// Queue operations target the first host unless another is selected:
//
//	err := client.Set(ctx, "emails", "hello")
//	count, err := client.Count(ctx, "emails", httpclient.WithHost(1))
//
// Get and Fetch rotate over the hosts when no host is selected, returning
// the first message found:
//
//	message, err := client.Get(ctx, "emails")
//	fmt.Println(message.Host, message.Message)
//
// Only a 200 response is a success. Other responses are returned as a
// *ProtocolError, and failed connections as a *TransportError. Queue names
// and messages are placed into the request path without escaping.
package httpclient
