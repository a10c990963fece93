// Package handler provides the Lambda handler for the media server skill.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/snackk/media-power-skill/internal/alexa"
	"github.com/snackk/media-power-skill/internal/wol"
)

// Remote is the Wake-on-LAN service behind the skill.
type Remote interface {
	Wake(ctx context.Context) wol.Result
	Status(ctx context.Context) wol.Result
}

// Handler answers Smart Home directives. It holds no per-invocation state
// and is shared across invocations of a warm container.
type Handler struct {
	remote Remote
	logger *slog.Logger
}

// New creates a new Handler.
func New(remote Remote, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{remote: remote, logger: logger}
}

// Handle processes a raw Lambda event. It always returns a protocol
// response: undecodable events and panics become an ErrorResponse.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (resp *alexa.Response) {
	log := h.requestLogger(ctx)

	var d *alexa.Directive
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling directive", "panic", r)
			resp = alexa.NewErrorResponse(d, alexa.ErrorTypeInternal, "Internal error")
		}
	}()

	d, err := alexa.Decode(event)
	if err != nil {
		log.Warn("rejecting malformed directive", "error", err)
		return alexa.NewErrorResponse(d, alexa.ErrorTypeInvalidDirective, fmt.Sprintf("Malformed directive: %v", err))
	}

	log.Info("directive received",
		"namespace", d.Header.Namespace,
		"name", d.Header.Name,
	)

	return h.Dispatch(ctx, d)
}

// requestLogger tags the logger with the Lambda request id when available.
func (h *Handler) requestLogger(ctx context.Context) *slog.Logger {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return h.logger.With("request_id", lc.AwsRequestID)
	}
	return h.logger
}
