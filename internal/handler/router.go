package handler

import (
	"context"
	"fmt"

	"github.com/snackk/media-power-skill/internal/alexa"
	"github.com/snackk/media-power-skill/internal/wol"
)

// Dispatch routes a decoded directive to its handler.
func (h *Handler) Dispatch(ctx context.Context, d *alexa.Directive) *alexa.Response {
	switch req := alexa.Classify(d).(type) {
	case alexa.DiscoverRequest:
		return alexa.NewDiscoverResponse(req.Directive)
	case alexa.PowerRequest:
		return h.power(ctx, req)
	case alexa.ReportStateRequest:
		return h.reportState(ctx, req)
	default:
		return alexa.NewErrorResponse(d, alexa.ErrorTypeInvalidDirective, "Directive not supported")
	}
}

// power handles TurnOn and TurnOff. The remote service can only wake the
// machine, so TurnOff reports OFF without any network call.
func (h *Handler) power(ctx context.Context, req alexa.PowerRequest) *alexa.Response {
	d := req.Directive

	if req.Action != alexa.TurnOn && req.Action != alexa.TurnOff {
		return alexa.NewErrorResponse(d, alexa.ErrorTypeInvalidDirective,
			fmt.Sprintf("Unsupported power directive: %s", d.Header.Name))
	}
	if d.Endpoint == nil {
		return alexa.NewErrorResponse(d, alexa.ErrorTypeInvalidDirective, "Directive has no endpoint")
	}

	state := alexa.PowerOff
	if req.Action == alexa.TurnOn {
		state = h.powerState(ctx, "wake", h.remote.Wake(ctx))
	}

	return alexa.NewPowerResponse(d, state)
}

func (h *Handler) reportState(ctx context.Context, req alexa.ReportStateRequest) *alexa.Response {
	d := req.Directive

	if d.Endpoint == nil {
		return alexa.NewErrorResponse(d, alexa.ErrorTypeInvalidDirective, "Directive has no endpoint")
	}

	return alexa.NewStateReport(d, h.powerState(ctx, "status", h.remote.Status(ctx)))
}

// powerState collapses a remote call result into ON or OFF. Failures are
// only visible in the logs.
func (h *Handler) powerState(ctx context.Context, call string, res wol.Result) alexa.PowerState {
	log := h.requestLogger(ctx)

	if res.Err != nil {
		log.Warn("remote call failed, reporting OFF", "call", call, "error", res.Err)
		return alexa.PowerOff
	}
	if !res.OK() {
		log.Info("media server not reachable", "call", call)
		return alexa.PowerOff
	}

	log.Info("media server reachable", "call", call)
	return alexa.PowerOn
}
