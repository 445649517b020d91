package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/kindred/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// FormatEnv selects the log format; "json" switches to JSON records on stderr.
const FormatEnv = "KINDRED_LOG_FORMAT"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			log := New()
			if os.Getenv(FormatEnv) == "json" {
				if l, ok := log.(*Logger); ok {
					l.SetJSON(os.Stderr)
				}
			}
			return log, nil
		},
	})
}
