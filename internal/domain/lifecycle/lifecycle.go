// Package lifecycle holds shared timing constants for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work hooked into the fx lifecycle.
const DefaultTimeout = 30 * time.Second
