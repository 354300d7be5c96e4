package models

import "strings"

type DeviceStatus string

const (
	DeviceConnected    DeviceStatus = "connected"
	DeviceDisconnected DeviceStatus = "disconnected"
	DeviceBlocked      DeviceStatus = "blocked"
)

// Device is a client device seen on a network.
type Device struct {
	URL          string   `json:"url,omitempty"`
	ID           string   `json:"id,omitempty"`
	MAC          string   `json:"mac,omitempty"`
	EUI64        string   `json:"eui64,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	IP           string   `json:"ip,omitempty"`
	IPs          []string `json:"ips,omitempty"`
	IPv4         string   `json:"ipv4,omitempty"`

	Nickname    string `json:"nickname,omitempty"`
	Hostname    string `json:"hostname,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	ModelName   string `json:"model_name,omitempty"`
	DeviceType  string `json:"device_type,omitempty"`

	Connected      bool   `json:"connected,omitempty"`
	Wireless       bool   `json:"wireless,omitempty"`
	ConnectionType string `json:"connection_type,omitempty"`
	SSID           string `json:"ssid,omitempty"`
	SubnetKind     string `json:"subnet_kind,omitempty"`
	Channel        int    `json:"channel,omitempty"`
	Auth           string `json:"auth,omitempty"`

	Blacklisted bool `json:"blacklisted,omitempty"`
	Paused      bool `json:"paused,omitempty"`
	IsGuest     bool `json:"is_guest,omitempty"`
	IsPrivate   bool `json:"is_private,omitempty"`
	Dropped     bool `json:"dropped,omitempty"`

	LastActive  string `json:"last_active,omitempty"`
	FirstActive string `json:"first_active,omitempty"`

	Source       *DeviceSource       `json:"source,omitempty"`
	Connectivity *DeviceConnectivity `json:"connectivity,omitempty"`
	Profile      *DeviceProfile      `json:"profile,omitempty"`
	Tags         []DeviceTag         `json:"tags,omitempty"`
	Usage        Object              `json:"usage,omitempty"`
}

// DeviceSource is the eero a device is attached to.
type DeviceSource struct {
	Location     string `json:"location,omitempty"`
	IsGateway    bool   `json:"is_gateway,omitempty"`
	Model        string `json:"model,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	URL          string `json:"url,omitempty"`
}

type DeviceConnectivity struct {
	RxBitrate string  `json:"rx_bitrate,omitempty"`
	Signal    string  `json:"signal,omitempty"`
	SignalAvg string  `json:"signal_avg,omitempty"`
	Score     float64 `json:"score,omitempty"`
	ScoreBars int     `json:"score_bars,omitempty"`
	Frequency int     `json:"frequency,omitempty"`
}

// DeviceProfile is the profile a device is assigned to.
type DeviceProfile struct {
	URL    string `json:"url,omitempty"`
	Name   string `json:"name,omitempty"`
	Paused bool   `json:"paused,omitempty"`
}

type DeviceTag struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// DeviceID returns the device id, falling back to its URL
// ("/2.2/networks/3401709/devices/44070b35c7b2").
func (d *Device) DeviceID() string {
	return idOrURL(d.ID, d.URL)
}

// NetworkID returns the network id embedded in the device URL.
func (d *Device) NetworkID() string {
	parts := strings.Split(strings.TrimRight(d.URL, "/"), "/")
	if len(parts) < 4 {
		return ""
	}
	return parts[len(parts)-3]
}

// ProfileID returns the id of the device's profile, if any.
func (d *Device) ProfileID() string {
	if d.Profile == nil {
		return ""
	}
	return idOrURL("", d.Profile.URL)
}

// Name returns the best name to show for the device.
func (d *Device) Name() string {
	for _, name := range []string{d.Nickname, d.DisplayName, d.Hostname, d.MAC} {
		if name != "" {
			return name
		}
	}
	return d.DeviceID()
}

// Status derives the device status from its connection and block state.
func (d *Device) Status() DeviceStatus {
	switch {
	case d.Connected && d.Blacklisted:
		return DeviceBlocked
	case d.Connected:
		return DeviceConnected
	default:
		return DeviceDisconnected
	}
}
