package hearing

import (
	"context"
	"log/slog"

	"petclinic/pkg/requestcontext"
)

// Interpreter reports the word its producer says. The producer is fixed for
// the interpreter's lifetime.
type Interpreter struct {
	producer WordProducer
	logger   *slog.Logger
}

func NewInterpreter(producer WordProducer, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{producer: producer, logger: logger}
}

// WhatIHeard logs and returns the producer's word.
func (i *Interpreter) WhatIHeard(ctx context.Context) string {
	word := i.producer.Word()
	i.logger.InfoContext(ctx, "word heard",
		"word", word,
		"request_id", requestcontext.RequestID(ctx),
	)
	return word
}
