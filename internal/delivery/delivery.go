// Package delivery defines the contract shared by every inbound transport.
package delivery

import "context"

// Delivery is a long-running inbound server. Implementations block in Serve
// until the server stops and release resources through fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
