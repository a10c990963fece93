package alexa

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingNamespace is returned when a directive header has no namespace.
var ErrMissingNamespace = errors.New("directive header is missing a namespace")

// Request is a directive decoded into one of the variants the skill
// understands. The concrete types are DiscoverRequest, PowerRequest,
// ReportStateRequest and UnsupportedRequest.
type Request interface {
	Source() *Directive
	isRequest()
}

// DiscoverRequest asks for the endpoints of the account.
type DiscoverRequest struct{ Directive *Directive }

// PowerRequest asks to turn the endpoint on or off.
type PowerRequest struct {
	Directive *Directive
	Action    PowerAction
}

// ReportStateRequest asks for the current property values of the endpoint.
type ReportStateRequest struct{ Directive *Directive }

// UnsupportedRequest is any directive outside the dispatch table.
type UnsupportedRequest struct{ Directive *Directive }

func (r DiscoverRequest) Source() *Directive    { return r.Directive }
func (r PowerRequest) Source() *Directive       { return r.Directive }
func (r ReportStateRequest) Source() *Directive { return r.Directive }
func (r UnsupportedRequest) Source() *Directive { return r.Directive }

func (DiscoverRequest) isRequest()    {}
func (PowerRequest) isRequest()       {}
func (ReportStateRequest) isRequest() {}
func (UnsupportedRequest) isRequest() {}

// PowerAction is the name of an Alexa.PowerController directive.
type PowerAction string

const (
	TurnOn  PowerAction = "TurnOn"
	TurnOff PowerAction = "TurnOff"
)

// Decode parses a raw Lambda event. Both the service envelope
// ({"directive": {...}}) and a bare directive object are accepted.
// The name is left for Classify to judge.
func Decode(event []byte) (*Directive, error) {
	var env Envelope
	if err := json.Unmarshal(event, &env); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}

	d := env.Directive
	if d == nil {
		d = &Directive{}
		if err := json.Unmarshal(event, d); err != nil {
			return nil, fmt.Errorf("failed to parse directive: %w", err)
		}
	}

	if d.Header.Namespace == "" {
		return d, ErrMissingNamespace
	}
	return d, nil
}

// Classify maps a directive onto its request variant.
func Classify(d *Directive) Request {
	switch d.Header.Namespace {
	case NamespaceDiscovery:
		return DiscoverRequest{Directive: d}
	case NamespacePowerController:
		return PowerRequest{Directive: d, Action: PowerAction(d.Header.Name)}
	case NamespaceAlexa:
		if d.Header.Name == "ReportState" {
			return ReportStateRequest{Directive: d}
		}
	}
	return UnsupportedRequest{Directive: d}
}
