package alexa

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"
)

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 3, 5, 10, 4, 5, 123456789, loc)

	got := Timestamp(ts)
	want := "2024-03-05T08:04:05.123456Z"
	if got != want {
		t.Errorf("Timestamp() = %q, want %q", got, want)
	}

	whole := time.Date(2024, 3, 5, 8, 4, 5, 0, time.UTC)
	if got := Timestamp(whole); got != "2024-03-05T08:04:05.000000Z" {
		t.Errorf("Timestamp() = %q, microseconds should always be present", got)
	}
}

func TestNewMessageID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewMessageID()
		if id == "" {
			t.Fatal("NewMessageID() returned empty id")
		}
		if seen[id] {
			t.Fatalf("NewMessageID() reused id %q", id)
		}
		seen[id] = true
	}
}

func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		directive  *Directive
		endpointID string
		token      string
	}{
		{
			name:       "nil directive",
			directive:  nil,
			endpointID: UnknownEndpointID,
		},
		{
			name: "no endpoint",
			directive: &Directive{
				Header: Header{Namespace: "Unknown.Namespace", Name: "Foo", CorrelationToken: "corr-1"},
			},
			endpointID: UnknownEndpointID,
			token:      "corr-1",
		},
		{
			name: "with endpoint",
			directive: &Directive{
				Header:   Header{Namespace: "Alexa.PowerController", Name: "Toggle", CorrelationToken: "corr-2"},
				Endpoint: &Endpoint{EndpointID: EndpointID},
			},
			endpointID: EndpointID,
			token:      "corr-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewErrorResponse(tt.directive, ErrorTypeInvalidDirective, "Directive not supported")

			h := resp.Event.Header
			if h.Namespace != "Alexa" || h.Name != "ErrorResponse" {
				t.Errorf("header = %s/%s, want Alexa/ErrorResponse", h.Namespace, h.Name)
			}
			if h.PayloadVersion != "3" {
				t.Errorf("payloadVersion = %q, want 3", h.PayloadVersion)
			}
			if h.CorrelationToken != tt.token {
				t.Errorf("correlationToken = %q, want %q", h.CorrelationToken, tt.token)
			}
			if resp.Event.Endpoint == nil || resp.Event.Endpoint.EndpointID != tt.endpointID {
				t.Errorf("endpoint = %+v, want id %q", resp.Event.Endpoint, tt.endpointID)
			}

			payload, ok := resp.Event.Payload.(ErrorPayload)
			if !ok {
				t.Fatalf("payload type = %T, want ErrorPayload", resp.Event.Payload)
			}
			if payload.Type != ErrorTypeInvalidDirective || payload.Message != "Directive not supported" {
				t.Errorf("payload = %+v", payload)
			}
			if resp.Context != nil {
				t.Error("error response should not carry context")
			}
		})
	}
}

func TestNewPowerResponse(t *testing.T) {
	d := &Directive{
		Header: Header{Namespace: "Alexa.PowerController", Name: "TurnOn", CorrelationToken: "corr"},
		Endpoint: &Endpoint{
			EndpointID: EndpointID,
			Scope:      &Scope{Type: "BearerToken", Token: "token-123"},
		},
	}

	for _, state := range []PowerState{PowerOn, PowerOff} {
		resp := NewPowerResponse(d, state)

		if resp.Event.Header.Name != "Response" || resp.Event.Header.Namespace != "Alexa" {
			t.Errorf("header = %+v", resp.Event.Header)
		}
		if resp.Event.Header.CorrelationToken != "corr" {
			t.Errorf("correlationToken = %q, want corr", resp.Event.Header.CorrelationToken)
		}
		if resp.Event.Endpoint.Scope.Token != "token-123" {
			t.Errorf("scope token = %q, want token-123", resp.Event.Endpoint.Scope.Token)
		}
		if len(resp.Context.Properties) != 1 {
			t.Fatalf("got %d properties, want 1", len(resp.Context.Properties))
		}
		p := resp.Context.Properties[0]
		if p.Namespace != "Alexa.PowerController" || p.Name != "powerState" {
			t.Errorf("property = %s.%s", p.Namespace, p.Name)
		}
		if p.Value != state {
			t.Errorf("value = %q, want %q", p.Value, state)
		}
		if p.UncertaintyInMilliseconds != 500 {
			t.Errorf("uncertainty = %d, want 500", p.UncertaintyInMilliseconds)
		}
	}
}

func TestNewStateReport_Wire(t *testing.T) {
	d := &Directive{
		Header: Header{Namespace: "Alexa", Name: "ReportState"},
		Endpoint: &Endpoint{
			EndpointID: EndpointID,
			Scope:      &Scope{Type: "BearerToken", Token: "tok"},
		},
	}

	raw, err := json.Marshal(NewStateReport(d, PowerOn))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire struct {
		Event struct {
			Header struct {
				Namespace        string  `json:"namespace"`
				Name             string  `json:"name"`
				MessageID        string  `json:"messageId"`
				CorrelationToken *string `json:"correlationToken"`
			} `json:"header"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"event"`
		Context struct {
			Properties []struct {
				Value        string `json:"value"`
				TimeOfSample string `json:"timeOfSample"`
			} `json:"properties"`
		} `json:"context"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if wire.Event.Header.Name != "StateReport" {
		t.Errorf("name = %q, want StateReport", wire.Event.Header.Name)
	}
	if wire.Event.Header.MessageID == "" {
		t.Error("messageId should be set")
	}
	if wire.Event.Header.CorrelationToken != nil {
		t.Error("correlationToken should be omitted when the directive had none")
	}
	if wire.Event.Payload == nil || len(wire.Event.Payload) != 0 {
		t.Errorf("payload = %v, want empty object", wire.Event.Payload)
	}
	if len(wire.Context.Properties) != 1 || wire.Context.Properties[0].Value != "ON" {
		t.Fatalf("properties = %+v", wire.Context.Properties)
	}

	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}Z$`)
	if !pattern.MatchString(wire.Context.Properties[0].TimeOfSample) {
		t.Errorf("timeOfSample = %q", wire.Context.Properties[0].TimeOfSample)
	}
}

func TestNewDiscoverResponse(t *testing.T) {
	d := &Directive{Header: Header{Namespace: "Alexa.Discovery", Name: "Discover"}}
	resp := NewDiscoverResponse(d)

	if resp.Event.Header.Namespace != "Alexa.Discovery" || resp.Event.Header.Name != "Discover.Response" {
		t.Errorf("header = %+v", resp.Event.Header)
	}

	payload, ok := resp.Event.Payload.(DiscoveryPayload)
	if !ok {
		t.Fatalf("payload type = %T, want DiscoveryPayload", resp.Event.Payload)
	}
	if len(payload.Endpoints) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(payload.Endpoints))
	}

	ep := payload.Endpoints[0]
	if ep.EndpointID != EndpointID {
		t.Errorf("endpointId = %q", ep.EndpointID)
	}
	if len(ep.DisplayCategories) != 1 || ep.DisplayCategories[0] != "SWITCH" {
		t.Errorf("displayCategories = %v", ep.DisplayCategories)
	}

	interfaces := map[string]Capability{}
	for _, c := range ep.Capabilities {
		interfaces[c.Interface] = c
	}
	if len(interfaces) != 2 {
		t.Fatalf("capabilities = %v", interfaces)
	}
	power, ok := interfaces["Alexa.PowerController"]
	if !ok {
		t.Fatal("missing Alexa.PowerController capability")
	}
	if power.Version != "3" || power.Properties == nil {
		t.Fatalf("power capability = %+v", power)
	}
	if !power.Properties.ProactivelyReported || !power.Properties.Retrievable {
		t.Error("powerState should be proactively reported and retrievable")
	}
	if len(power.Properties.Supported) != 1 || power.Properties.Supported[0].Name != "powerState" {
		t.Errorf("supported = %+v", power.Properties.Supported)
	}
	if _, ok := interfaces["Alexa"]; !ok {
		t.Error("missing Alexa capability")
	}
}
