package notify

import (
	"context"

	"foamparty/pkg/logger"
)

// LogOpener records the compose link instead of sending anything.
type LogOpener struct {
	log *logger.Logger
}

func NewLogOpener(log *logger.Logger) *LogOpener {
	return &LogOpener{log: log}
}

func (o *LogOpener) Open(_ context.Context, msg Message) error {
	o.log.Info("operator notification composed",
		"to", msg.To,
		"subject", msg.Subject,
		"compose_url", msg.URL(),
	)
	return nil
}
