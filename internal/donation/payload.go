package donation

// Payload is the server-bound serialization of an intent at submission
// time. All currency fields are integer minor units; building a Payload is
// the single point where the intent's amounts cross the wire boundary.
type Payload struct {
	AmountCents         int64  `json:"amount"`
	DonationAmountCents int64  `json:"donationAmount"`
	ProcessingFeeCents  int64  `json:"processingFee"`
	DonationType        string `json:"donationType"`
	CoverProcessingFee  bool   `json:"coverProcessingFee"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Phone               string `json:"phone,omitempty"`
	Address             string `json:"address"`
	City                string `json:"city"`
	State               string `json:"state"`
	Zip                 string `json:"zip"`
	Occupation          string `json:"occupation"`
	Employer            string `json:"employer"`
	Comment             string `json:"comment,omitempty"`
}

// Payload serializes the intent. The invariant
// amount == donationAmount + (coverProcessingFee ? processingFee : 0)
// holds by construction: all three values come from the same derived state.
func (in Intent) Payload() Payload {
	donor := in.Donor.trimmed()
	return Payload{
		AmountCents:         int64(in.Total()),
		DonationAmountCents: int64(in.BaseAmount()),
		ProcessingFeeCents:  int64(in.Fee()),
		DonationType:        string(in.Frequency),
		CoverProcessingFee:  in.CoverFee,
		FirstName:           donor.FirstName,
		LastName:            donor.LastName,
		Email:               donor.Email,
		Phone:               donor.Phone,
		Address:             donor.Address,
		City:                donor.City,
		State:               donor.State,
		Zip:                 donor.Zip,
		Occupation:          donor.Occupation,
		Employer:            donor.Employer,
		Comment:             donor.Comment,
	}
}
