package alexa

import (
	"time"

	"github.com/google/uuid"
)

// UnknownEndpointID is reported in an ErrorResponse when the directive
// carried no endpoint.
const UnknownEndpointID = "unknown"

// PowerStateUncertainty is the uncertainty window of a powerState sample.
const PowerStateUncertainty = 500

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp formats t in UTC with microsecond precision and a Z suffix.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// NewMessageID returns a fresh message identifier.
func NewMessageID() string {
	return uuid.NewString()
}

// newHeader builds a response header, echoing the correlation token of d.
func newHeader(namespace, name string, d *Directive) Header {
	h := Header{
		Namespace:      namespace,
		Name:           name,
		PayloadVersion: PayloadVersion,
		MessageID:      NewMessageID(),
	}
	if d != nil {
		h.CorrelationToken = d.Header.CorrelationToken
	}
	return h
}

// NewErrorResponse builds an Alexa.ErrorResponse for d. d may be nil when
// the event could not be decoded at all.
func NewErrorResponse(d *Directive, kind ErrorType, message string) *Response {
	endpointID := UnknownEndpointID
	if d != nil && d.Endpoint != nil && d.Endpoint.EndpointID != "" {
		endpointID = d.Endpoint.EndpointID
	}

	return &Response{
		Event: Event{
			Header:   newHeader(NamespaceAlexa, "ErrorResponse", d),
			Endpoint: &Endpoint{EndpointID: endpointID},
			Payload:  ErrorPayload{Type: kind, Message: message},
		},
	}
}

// NewPowerResponse builds the Alexa.Response to a power controller directive.
func NewPowerResponse(d *Directive, state PowerState) *Response {
	return newPropertyResponse("Response", d, state)
}

// NewStateReport builds the Alexa.StateReport answering a ReportState directive.
func NewStateReport(d *Directive, state PowerState) *Response {
	return newPropertyResponse("StateReport", d, state)
}

func newPropertyResponse(name string, d *Directive, state PowerState) *Response {
	var endpoint *Endpoint
	if d.Endpoint != nil {
		endpoint = &Endpoint{
			Scope:      d.Endpoint.Scope,
			EndpointID: d.Endpoint.EndpointID,
		}
	}

	return &Response{
		Context: &Context{
			Properties: []Property{{
				Namespace:                 NamespacePowerController,
				Name:                      "powerState",
				Value:                     state,
				TimeOfSample:              Timestamp(time.Now()),
				UncertaintyInMilliseconds: PowerStateUncertainty,
			}},
		},
		Event: Event{
			Header:   newHeader(NamespaceAlexa, name, d),
			Endpoint: endpoint,
			Payload:  struct{}{},
		},
	}
}

// NewDiscoverResponse builds the Discover.Response advertising the media server.
func NewDiscoverResponse(d *Directive) *Response {
	return &Response{
		Event: Event{
			Header:  newHeader(NamespaceDiscovery, "Discover.Response", d),
			Payload: DiscoveryPayload{Endpoints: []DeviceDescriptor{MediaServer()}},
		},
	}
}
