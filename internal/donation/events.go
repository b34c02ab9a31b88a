package donation

import "github.com/forgeunbound/donation_engine/internal/money"

// Event is a form interaction folded into the intent by Apply.
type Event interface {
	isEvent()
}

// PresetSelected picks one of the campaign's preset amounts and clears any
// custom amount.
type PresetSelected struct {
	Amount money.Cents
}

// CustomEntered records a donor-typed amount and deselects any preset.
// Amounts above the campaign's contribution ceiling are clamped, not
// rejected.
type CustomEntered struct {
	Amount money.Cents
}

// Prefilled applies an externally supplied amount in minor units, e.g.
// from a query parameter. Values below $1.00 are ignored.
type Prefilled struct {
	AmountCents money.Cents
}

// FrequencyChanged switches between one-time and monthly giving.
type FrequencyChanged struct {
	Frequency Frequency
}

// CoverFeeToggled flips whether the donor absorbs the processing fee.
type CoverFeeToggled struct {
	Cover bool
}

// DonorChanged replaces the donor information fields.
type DonorChanged struct {
	Donor DonorInfo
}

// CardChanged folds the latest change event from the hosted card widget.
type CardChanged struct {
	State CardState
}

// SubmitStarted engages the loading lock for an outbound request.
type SubmitStarted struct{}

// SubmitFailed releases the loading lock and records the failure message so
// the donor can correct input and resubmit.
type SubmitFailed struct {
	Message string
}

// SubmitSucceeded moves the intent to its terminal success state.
type SubmitSucceeded struct{}

// ResetRequested returns the intent to its initial empty values, the only
// way out of the success state ("make another donation").
type ResetRequested struct{}

func (PresetSelected) isEvent()   {}
func (CustomEntered) isEvent()    {}
func (Prefilled) isEvent()        {}
func (FrequencyChanged) isEvent() {}
func (CoverFeeToggled) isEvent()  {}
func (DonorChanged) isEvent()     {}
func (CardChanged) isEvent()      {}
func (SubmitStarted) isEvent()    {}
func (SubmitFailed) isEvent()     {}
func (SubmitSucceeded) isEvent()  {}
func (ResetRequested) isEvent()   {}

// Apply folds one event into the intent and returns the next state. It is
// pure: the receiver is unchanged.
func (in Intent) Apply(ev Event) Intent {
	switch e := ev.(type) {
	case PresetSelected:
		if e.Amount <= 0 {
			return in
		}
		in.PresetAmount = e.Amount
		in.CustomAmount = 0

	case CustomEntered:
		amount := e.Amount
		if amount < 0 {
			amount = 0
		}
		if in.MaxContribution > 0 && amount > in.MaxContribution {
			amount = in.MaxContribution
		}
		in.CustomAmount = amount
		in.PresetAmount = 0

	case Prefilled:
		// Below $1.00 the value is dropped; callers log the diagnostic.
		if e.AmountCents < 100 {
			return in
		}
		for _, preset := range in.Presets {
			if preset == e.AmountCents {
				return in.Apply(PresetSelected{Amount: preset})
			}
		}
		return in.Apply(CustomEntered{Amount: e.AmountCents})

	case FrequencyChanged:
		// Never touches amounts.
		in.Frequency = e.Frequency

	case CoverFeeToggled:
		// Fee and total are derived; the base amount is untouched.
		in.CoverFee = e.Cover

	case DonorChanged:
		in.Donor = e.Donor

	case CardChanged:
		in.Card = e.State

	case SubmitStarted:
		if in.Phase == PhaseEditing {
			in.Phase = PhaseSubmitting
			in.LastError = ""
		}

	case SubmitFailed:
		if in.Phase == PhaseSubmitting {
			in.Phase = PhaseEditing
			in.LastError = e.Message
		}

	case SubmitSucceeded:
		if in.Phase == PhaseSubmitting {
			in.Phase = PhaseSucceeded
			in.LastError = ""
		}

	case ResetRequested:
		return New(in.Presets, in.MaxContribution)
	}

	return in
}
