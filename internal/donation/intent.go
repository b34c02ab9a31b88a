package donation

import (
	"strings"

	"github.com/forgeunbound/donation_engine/internal/money"
)

// Frequency selects between a single charge and a recurring monthly one.
type Frequency string

const (
	FrequencyOneTime Frequency = "one_time"
	FrequencyMonthly Frequency = "monthly"
)

// Phase tracks where the intent sits in the submission lifecycle. The
// submitting phase is the loading lock: a second submit attempt while a
// request is in flight is suppressed.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseSucceeded
)

// CardState mirrors the last change event reported by the hosted card
// widget. The widget owns it; the intent only reads it.
type CardState struct {
	Complete     bool
	Empty        bool
	ErrorMessage string
}

// DonorInfo holds the contribution-reporting fields collected from the
// donor. All fields except Comment are required by federal reporting rules.
type DonorInfo struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	Zip        string
	Occupation string
	Employer   string
	Comment    string
}

func (d DonorInfo) trimmed() DonorInfo {
	return DonorInfo{
		FirstName:  strings.TrimSpace(d.FirstName),
		LastName:   strings.TrimSpace(d.LastName),
		Email:      strings.TrimSpace(d.Email),
		Phone:      strings.TrimSpace(d.Phone),
		Address:    strings.TrimSpace(d.Address),
		City:       strings.TrimSpace(d.City),
		State:      strings.TrimSpace(d.State),
		Zip:        strings.TrimSpace(d.Zip),
		Occupation: strings.TrimSpace(d.Occupation),
		Employer:   strings.TrimSpace(d.Employer),
		Comment:    strings.TrimSpace(d.Comment),
	}
}

// complete reports whether every required field is non-empty after trimming.
func (d DonorInfo) complete() bool {
	t := d.trimmed()
	required := []string{
		t.FirstName, t.LastName, t.Email, t.Phone, t.Address,
		t.City, t.State, t.Zip, t.Occupation, t.Employer,
	}
	for _, v := range required {
		if v == "" {
			return false
		}
	}
	return true
}

// Intent is the in-progress donation on the client side. It is an explicit
// value updated through Apply; nothing in this package holds mutable
// package-level state. Exactly one of PresetAmount and CustomAmount is
// non-zero at a time.
type Intent struct {
	Presets         []money.Cents
	MaxContribution money.Cents

	PresetAmount money.Cents
	CustomAmount money.Cents
	Frequency    Frequency
	CoverFee     bool
	Donor        DonorInfo
	Card         CardState
	Phase        Phase
	LastError    string
}

// New returns an empty intent bound to the campaign's preset amounts and
// contribution ceiling. Fee coverage defaults to opted in, matching the
// rendered form.
func New(presets []money.Cents, maxContribution money.Cents) Intent {
	return Intent{
		Presets:         presets,
		MaxContribution: maxContribution,
		Frequency:       FrequencyOneTime,
		CoverFee:        true,
	}
}

// BaseAmount is the selected or custom donation amount, whichever is active.
func (in Intent) BaseAmount() money.Cents {
	if in.PresetAmount > 0 {
		return in.PresetAmount
	}
	return in.CustomAmount
}

// Fee is the derived processing fee: zero unless the donor covers it.
func (in Intent) Fee() money.Cents {
	if !in.CoverFee {
		return 0
	}
	return money.FeeCents(in.BaseAmount())
}

// Total is always BaseAmount plus Fee; it is recomputed on read so it can
// never drift from its formula.
func (in Intent) Total() money.Cents {
	return in.BaseAmount() + in.Fee()
}

// HasAmount reports whether a positive total has been selected.
func (in Intent) HasAmount() bool {
	return in.Total() > 0
}

// HasValidCard reports whether the hosted card widget last reported a
// complete, non-empty entry with no error.
func (in Intent) HasValidCard() bool {
	return in.Card.Complete && !in.Card.Empty && in.Card.ErrorMessage == ""
}

// HasRequiredDonorFields reports whether every required donor field is set.
func (in Intent) HasRequiredDonorFields() bool {
	return in.Donor.complete()
}

// CanSubmit gates submission: amount, card, and donor info must all be
// valid, and no request may already be in flight.
func (in Intent) CanSubmit() bool {
	return in.Phase == PhaseEditing &&
		in.HasAmount() &&
		in.HasValidCard() &&
		in.HasRequiredDonorFields()
}
