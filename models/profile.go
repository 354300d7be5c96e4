package models

// Profile groups devices for pausing, scheduling and filtering.
type Profile struct {
	ID                   string          `json:"id,omitempty"`
	URL                  string          `json:"url,omitempty"`
	Name                 string          `json:"name,omitempty"`
	Paused               bool            `json:"paused,omitempty"`
	PremiumEnabled       bool            `json:"premium_enabled,omitempty"`
	ScheduleEnabled      bool            `json:"schedule_enabled,omitempty"`
	Schedule             []ScheduleBlock `json:"schedule,omitempty"`
	ContentFilter        *ContentFilter  `json:"unified_content_filters,omitempty"`
	Devices              []Device        `json:"devices,omitempty"`
	DeviceCount          int             `json:"device_count,omitempty"`
	ConnectedDeviceCount int             `json:"connected_device_count,omitempty"`
	CustomBlockList      []string        `json:"custom_block_list,omitempty"`
	CustomAllowList      []string        `json:"custom_allow_list,omitempty"`
	Usage                Object          `json:"usage,omitempty"`
}

type ScheduleBlock struct {
	Days      []string `json:"days,omitempty"`
	StartTime string   `json:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty"`
}

// ContentFilter is the set of content categories a profile blocks.
type ContentFilter struct {
	AdBlock           bool `json:"adblock,omitempty"`
	AdBlockPlus       bool `json:"adblock_plus,omitempty"`
	SafeSearch        bool `json:"safe_search,omitempty"`
	BlockMalware      bool `json:"block_malware,omitempty"`
	BlockIllegal      bool `json:"block_illegal,omitempty"`
	BlockViolent      bool `json:"block_violent,omitempty"`
	BlockAdult        bool `json:"block_adult,omitempty"`
	YouTubeRestricted bool `json:"youtube_restricted,omitempty"`
}

// ProfileID returns the profile id, falling back to its URL.
func (p *Profile) ProfileID() string {
	return idOrURL(p.ID, p.URL)
}

// TotalDevices returns the device count, counting embedded devices when the API omits it.
func (p *Profile) TotalDevices() int {
	if p.DeviceCount > 0 {
		return p.DeviceCount
	}
	return len(p.Devices)
}
