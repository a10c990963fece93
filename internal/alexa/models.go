// Package alexa contains the Alexa Smart Home wire types and the builders
// for every response envelope the skill can return.
package alexa

import "encoding/json"

// PayloadVersion is the Smart Home API version of every message.
const PayloadVersion = "3"

// Namespaces handled by the skill.
const (
	NamespaceAlexa           = "Alexa"
	NamespaceDiscovery       = "Alexa.Discovery"
	NamespacePowerController = "Alexa.PowerController"
)

// Envelope is the event the Smart Home service delivers to the Lambda.
type Envelope struct {
	Directive *Directive `json:"directive"`
}

// Directive is an incoming command or query.
type Directive struct {
	Header   Header          `json:"header"`
	Endpoint *Endpoint       `json:"endpoint,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// Header identifies a message by namespace and name.
type Header struct {
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
	PayloadVersion   string `json:"payloadVersion,omitempty"`
	MessageID        string `json:"messageId,omitempty"`
	CorrelationToken string `json:"correlationToken,omitempty"`
}

// Endpoint addresses the target device of a directive or response.
type Endpoint struct {
	Scope      *Scope            `json:"scope,omitempty"`
	EndpointID string            `json:"endpointId"`
	Cookie     map[string]string `json:"cookie,omitempty"`
}

// Scope carries the user's bearer token.
type Scope struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Response is the envelope returned to the Smart Home service.
type Response struct {
	Event   Event    `json:"event"`
	Context *Context `json:"context,omitempty"`
}

// Event is the body of a response.
type Event struct {
	Header   Header      `json:"header"`
	Endpoint *Endpoint   `json:"endpoint,omitempty"`
	Payload  interface{} `json:"payload"`
}

// Context holds the property snapshot of the endpoint.
type Context struct {
	Properties []Property `json:"properties"`
}

// Property is a single reported property value.
type Property struct {
	Namespace                 string     `json:"namespace"`
	Name                      string     `json:"name"`
	Value                     PowerState `json:"value"`
	TimeOfSample              string     `json:"timeOfSample"`
	UncertaintyInMilliseconds int        `json:"uncertaintyInMilliseconds"`
}

// PowerState is the value of the powerState property.
type PowerState string

const (
	PowerOn  PowerState = "ON"
	PowerOff PowerState = "OFF"
)

// ErrorType is the type field of an ErrorResponse payload.
type ErrorType string

const (
	ErrorTypeInvalidDirective ErrorType = "INVALID_DIRECTIVE"
	ErrorTypeInternal         ErrorType = "INTERNAL_ERROR"
)

// ErrorPayload is the payload of an ErrorResponse.
type ErrorPayload struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

// DiscoveryPayload is the payload of a Discover.Response.
type DiscoveryPayload struct {
	Endpoints []DeviceDescriptor `json:"endpoints"`
}
