package models

// Eero is a single eero node on a network.
type Eero struct {
	URL             string `json:"url,omitempty"`
	Serial          string `json:"serial,omitempty"`
	MACAddress      string `json:"mac_address,omitempty"`
	Model           string `json:"model,omitempty"`
	ModelNumber     string `json:"model_number,omitempty"`
	ModelVariant    string `json:"model_variant,omitempty"`
	Status          string `json:"status,omitempty"`
	State           string `json:"state,omitempty"`
	Location        any    `json:"location,omitempty"` // string, or an object for some models
	IPAddress       string `json:"ip_address,omitempty"`
	OS              string `json:"os,omitempty"`
	OSVersion       string `json:"os_version,omitempty"`
	Gateway         bool   `json:"gateway,omitempty"`
	IsPrimaryNode   bool   `json:"is_primary_node,omitempty"`
	Wired           bool   `json:"wired,omitempty"`
	UsingWAN        bool   `json:"using_wan,omitempty"`
	ConnectionType  string `json:"connection_type,omitempty"`
	MeshQualityBars int    `json:"mesh_quality_bars,omitempty"`
	LEDOn           bool   `json:"led_on,omitempty"`
	LEDBrightness   int    `json:"led_brightness,omitempty"`
	UpdateAvailable bool   `json:"update_available,omitempty"`
	HeartbeatOK     bool   `json:"heartbeat_ok,omitempty"`
	ProvidesWiFi    bool   `json:"provides_wifi,omitempty"`
	Joined          string `json:"joined,omitempty"`
	LastHeartbeat   string `json:"last_heartbeat,omitempty"`
	LastReboot      string `json:"last_reboot,omitempty"`

	ConnectedClientsCount         int `json:"connected_clients_count,omitempty"`
	ConnectedWiredClientsCount    int `json:"connected_wired_clients_count,omitempty"`
	ConnectedWirelessClientsCount int `json:"connected_wireless_clients_count,omitempty"`

	EthernetAddresses []string `json:"ethernet_addresses,omitempty"`
	WiFiBSSIDs        []string `json:"wifi_bssids,omitempty"`
	Bands             []string `json:"bands,omitempty"`

	Network        Object   `json:"network,omitempty"`
	Resources      Object   `json:"resources,omitempty"`
	EthernetStatus Object   `json:"ethernet_status,omitempty"`
	PowerInfo      Object   `json:"power_info,omitempty"`
	UpdateStatus   Object   `json:"update_status,omitempty"`
	Messages       []Object `json:"messages,omitempty"`
}

// EeroID returns the id from the eero's URL, e.g. "/2.2/eeros/26172144".
func (e *Eero) EeroID() string {
	return idOrURL("", e.URL)
}

// IsGateway reports whether this eero is the gateway node.
func (e *Eero) IsGateway() bool {
	return e.Gateway || e.IsPrimaryNode
}

// LocationName returns the location as text whatever shape the API used.
func (e *Eero) LocationName() string {
	switch location := e.Location.(type) {
	case string:
		return location
	case map[string]any:
		if name, ok := location["name"].(string); ok {
			return name
		}
		if city, ok := location["city"].(string); ok {
			return city
		}
	}
	return ""
}
