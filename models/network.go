package models

import "strings"

type NetworkStatus string

const (
	NetworkOnline   NetworkStatus = "online"
	NetworkOffline  NetworkStatus = "offline"
	NetworkUpdating NetworkStatus = "updating"
	NetworkUnknown  NetworkStatus = "unknown"
)

// Network is an eero network. Lists return a summary, the detail call fills in the rest.
type Network struct {
	ID          string `json:"id,omitempty"`
	URL         string `json:"url,omitempty"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Status      string `json:"status,omitempty"`
	Owner       string `json:"owner,omitempty"`
	CreatedAt   string `json:"created,omitempty"`
	LastReboot  string `json:"last_reboot,omitempty"`

	NetworkCustomerType string `json:"network_customer_type,omitempty"`
	PremiumStatus       string `json:"premium_status,omitempty"`

	ISPName    string `json:"isp_name,omitempty"`
	PublicIP   string `json:"public_ip,omitempty"`
	WANIP      string `json:"wan_ip,omitempty"`
	Gateway    string `json:"gateway,omitempty"`
	GatewayIP  string `json:"gateway_ip,omitempty"`
	WANType    string `json:"wan_type,omitempty"`
	Connection Object `json:"connection,omitempty"`

	WirelessMode string `json:"wireless_mode,omitempty"`
	MLOMode      string `json:"mlo_mode,omitempty"`
	SQM          bool   `json:"sqm,omitempty"`
	UPnP         bool   `json:"upnp,omitempty"`
	Thread       bool   `json:"thread,omitempty"`
	BandSteering bool   `json:"band_steering,omitempty"`
	WPA3         bool   `json:"wpa3,omitempty"`
	IPv6Upstream bool   `json:"ipv6_upstream,omitempty"`
	PowerSaving  bool   `json:"power_saving,omitempty"`

	BackupInternetEnabled bool `json:"backup_internet_enabled,omitempty"`

	GuestNetwork *GuestNetwork    `json:"guest_network,omitempty"`
	DHCP         *DHCP            `json:"dhcp,omitempty"`
	Settings     *NetworkSettings `json:"settings,omitempty"`

	Health     Object `json:"health,omitempty"`
	SpeedTest  Object `json:"speed,omitempty"`
	GeoIP      Object `json:"geo_ip,omitempty"`
	DNS        Object `json:"dns,omitempty"`
	Updates    Object `json:"updates,omitempty"`
	DDNS       Object `json:"ddns,omitempty"`
	IPSettings Object `json:"ip_settings,omitempty"`
	PremiumDNS Object `json:"premium_dns,omitempty"`
}

// GuestNetwork is the guest network block of a network.
type GuestNetwork struct {
	Enabled  bool   `json:"enabled"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// DHCP is the network's address assignment configuration.
type DHCP struct {
	Mode             string `json:"mode,omitempty"`
	LeaseTimeSeconds int    `json:"lease_time_seconds,omitempty"`
	DNSServer        string `json:"dns_server,omitempty"`
	SubnetMask       string `json:"subnet_mask,omitempty"`
	StartingAddress  string `json:"starting_address,omitempty"`
	EndingAddress    string `json:"ending_address,omitempty"`
	Custom           *struct {
		SubnetMask string `json:"subnet_mask,omitempty"`
		StartIP    string `json:"start_ip,omitempty"`
		EndIP      string `json:"end_ip,omitempty"`
	} `json:"custom,omitempty"`
}

// Range returns the first and last address handed out, from the custom block when the API sends one.
func (d *DHCP) Range() (string, string) {
	if d == nil {
		return "", ""
	}
	if d.Custom != nil && d.Custom.StartIP != "" {
		return d.Custom.StartIP, d.Custom.EndIP
	}
	return d.StartingAddress, d.EndingAddress
}

type NetworkSettings struct {
	IPv6Upstream      bool   `json:"ipv6_upstream,omitempty"`
	IPv6Downstream    bool   `json:"ipv6_downstream,omitempty"`
	BandSteering      bool   `json:"band_steering,omitempty"`
	ThreadEnabled     bool   `json:"thread_enabled,omitempty"`
	UPnPEnabled       bool   `json:"upnp_enabled,omitempty"`
	WPA3Transition    bool   `json:"wpa3_transition,omitempty"`
	DNSCaching        bool   `json:"dns_caching,omitempty"`
	TargetFirmware    string `json:"target_firmware,omitempty"`
	GatewayMACAddress string `json:"gateway_mac_address,omitempty"`
}

// NetworkID returns the network id, falling back to its URL.
func (n *Network) NetworkID() string {
	return idOrURL(n.ID, n.URL)
}

// Label returns the best name to show for the network.
func (n *Network) Label() string {
	if n.DisplayName != "" {
		return n.DisplayName
	}
	return n.Name
}

// NormalizedStatus maps the API status onto the known statuses. The API reports
// an online network as "connected".
func (n *Network) NormalizedStatus() NetworkStatus {
	switch status := NetworkStatus(strings.ToLower(n.Status)); status {
	case NetworkOnline, NetworkOffline, NetworkUpdating:
		return status
	case "connected":
		return NetworkOnline
	default:
		return NetworkUnknown
	}
}

// PublicAddress returns the public IP, which detail responses call wan_ip.
func (n *Network) PublicAddress() string {
	if n.PublicIP != "" {
		return n.PublicIP
	}
	return n.WANIP
}

// ISP returns the ISP name, from geo_ip when the top level field is absent.
func (n *Network) ISP() string {
	if n.ISPName != "" {
		return n.ISPName
	}
	if isp, ok := n.GeoIP["isp"].(string); ok {
		return isp
	}
	return ""
}

// GuestNetworkEnabled reports whether the guest network is on.
func (n *Network) GuestNetworkEnabled() bool {
	return n.GuestNetwork != nil && n.GuestNetwork.Enabled
}
