package campaign

import "github.com/forgeunbound/donation_engine/internal/money"

// Config is the campaign branding and donation settings consumed by the
// widget. The transaction core only reads DefaultAmounts and
// MaxContribution; the rest is copy for the embedding page.
type Config struct {
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Tagline      string `json:"tagline,omitempty"`
	Website      string `json:"website,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`

	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`

	LogoURL        string `json:"logoUrl,omitempty"`
	LogoAlt        string `json:"logoAlt,omitempty"`
	FaviconURL     string `json:"faviconUrl,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`

	PageTitle       string `json:"pageTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`

	LegalName string `json:"legalName,omitempty"`
	FECID     string `json:"fecId,omitempty"`

	// Donation settings, in whole dollars.
	DefaultAmounts  []int64 `json:"defaultAmounts"`
	MaxContribution int64   `json:"maxContribution"`

	CustomFooterText       string `json:"customFooterText,omitempty"`
	DonationSuccessMessage string `json:"donationSuccessMessage,omitempty"`
}

// Default returns the fallback configuration used when no campaign file
// exists: the federal per-election limit and the standard preset ladder.
func Default() Config {
	return Config{
		Name:            "Your Campaign",
		FullName:        "Your Campaign",
		DefaultAmounts:  []int64{25, 50, 100, 250, 500, 1000, 3500},
		MaxContribution: 3500,
	}
}

// PresetCents converts the preset ladder to minor units for the form.
func (c Config) PresetCents() []money.Cents {
	presets := make([]money.Cents, 0, len(c.DefaultAmounts))
	for _, dollars := range c.DefaultAmounts {
		presets = append(presets, money.FromDollars(dollars))
	}
	return presets
}

// MaxContributionCents is the contribution ceiling in minor units.
func (c Config) MaxContributionCents() money.Cents {
	return money.FromDollars(c.MaxContribution)
}
