package models

// Account is the logged in user's account.
type Account struct {
	ID                string        `json:"id,omitempty"`
	URL               string        `json:"url,omitempty"`
	Name              string        `json:"name,omitempty"`
	Email             *ContactValue `json:"email,omitempty"`
	Phone             *ContactValue `json:"phone,omitempty"`
	Role              string        `json:"role,omitempty"`
	CanTransfer       bool          `json:"can_transfer,omitempty"`
	PremiumStatus     string        `json:"premium_status,omitempty"`
	PremiumExpiry     string        `json:"premium_expiry,omitempty"`
	PremiumDetails    Object        `json:"premium_details,omitempty"`
	Networks          Object        `json:"networks,omitempty"`
	Users             []User        `json:"users,omitempty"`
	CreatedAt         string        `json:"created_at,omitempty"`
	ConsentsRequired  bool          `json:"consents_required,omitempty"`
	MarketingOptIn    bool          `json:"marketing_opt_in,omitempty"`
	Business          Object        `json:"business,omitempty"`
	AuthorizationType string        `json:"auth,omitempty"`
}

// ContactValue is an email address or phone number together with its verification state.
type ContactValue struct {
	Value          string `json:"value,omitempty"`
	CountryCode    string `json:"country_code,omitempty"`
	NationalNumber string `json:"national_number,omitempty"`
	Verified       bool   `json:"verified,omitempty"`
}

// User is a member of an account.
type User struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AccountID returns the account id, falling back to its URL.
func (a *Account) AccountID() string {
	return idOrURL(a.ID, a.URL)
}
