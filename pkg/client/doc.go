// Package client provides a session with one air purifier.
//
// A Session is created disconnected. Connect resolves the device address and
// runs the key exchange; afterwards Get, Set, Network and Status exchange
// encrypted envelopes with the device. Each call performs at most one HTTP
// round trip and nothing is retried.
//
//	s := client.New(client.Config{Host: "192.168.1.21"})
//	if err := s.Connect(ctx, ""); err != nil {
//		return err
//	}
//	state, err := s.Set(ctx, wire.NewPayload().With("pwr", "1"))
//
// A Session is not safe for concurrent use.
package client
