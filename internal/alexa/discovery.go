package alexa

// Identity of the single endpoint exposed by the skill.
const (
	EndpointID       = "media-server-01"
	FriendlyName     = "Media Server"
	ManufacturerName = "Snackk"
	Model            = "WOL Bridge"
	SerialNumber     = "SNK-WOL-0001"
	FirmwareVersion  = "1.0.0"
)

// DeviceDescriptor is an endpoint entry of a Discover.Response.
type DeviceDescriptor struct {
	EndpointID           string                `json:"endpointId"`
	ManufacturerName     string                `json:"manufacturerName"`
	FriendlyName         string                `json:"friendlyName"`
	Description          string                `json:"description"`
	DisplayCategories    []string              `json:"displayCategories"`
	AdditionalAttributes *AdditionalAttributes `json:"additionalAttributes,omitempty"`
	Capabilities         []Capability          `json:"capabilities"`
}

// AdditionalAttributes describes the hardware behind an endpoint.
type AdditionalAttributes struct {
	Manufacturer    string `json:"manufacturer"`
	Model           string `json:"model"`
	SerialNumber    string `json:"serialNumber"`
	FirmwareVersion string `json:"firmwareVersion"`
}

// Capability declares an interface supported by an endpoint.
type Capability struct {
	Type       string                `json:"type"`
	Interface  string                `json:"interface"`
	Version    string                `json:"version"`
	Properties *CapabilityProperties `json:"properties,omitempty"`
}

// CapabilityProperties lists the properties of a capability.
type CapabilityProperties struct {
	Supported           []SupportedProperty `json:"supported"`
	ProactivelyReported bool                `json:"proactivelyReported"`
	Retrievable         bool                `json:"retrievable"`
}

// SupportedProperty names a single property.
type SupportedProperty struct {
	Name string `json:"name"`
}

// MediaServer returns the descriptor of the media server endpoint.
func MediaServer() DeviceDescriptor {
	return DeviceDescriptor{
		EndpointID:        EndpointID,
		ManufacturerName:  ManufacturerName,
		FriendlyName:      FriendlyName,
		Description:       "Media server powered on through Wake-on-LAN",
		DisplayCategories: []string{"SWITCH"},
		AdditionalAttributes: &AdditionalAttributes{
			Manufacturer:    ManufacturerName,
			Model:           Model,
			SerialNumber:    SerialNumber,
			FirmwareVersion: FirmwareVersion,
		},
		Capabilities: []Capability{
			{
				Type:      "AlexaInterface",
				Interface: NamespacePowerController,
				Version:   PayloadVersion,
				Properties: &CapabilityProperties{
					Supported:           []SupportedProperty{{Name: "powerState"}},
					ProactivelyReported: true,
					Retrievable:         true,
				},
			},
			{
				Type:      "AlexaInterface",
				Interface: NamespaceAlexa,
				Version:   PayloadVersion,
			},
		},
	}
}
