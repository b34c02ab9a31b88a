package checkout

// CreateIntentRequest is the submission payload from the donation form.
// Amount fields are integer minor units; the client is the authoritative
// rounding point and the server never re-derives them.
type CreateIntentRequest struct {
	AmountCents         int64  `json:"amount"`
	DonationAmountCents int64  `json:"donationAmount"`
	ProcessingFeeCents  int64  `json:"processingFee"`
	DonationType        string `json:"donationType"`
	CoverProcessingFee  bool   `json:"coverProcessingFee"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	City                string `json:"city"`
	State               string `json:"state"`
	Zip                 string `json:"zip"`
	Occupation          string `json:"occupation"`
	Employer            string `json:"employer"`
	Comment             string `json:"comment"`
}

// CreateIntentResponse carries the client secret needed to complete
// confirmation in the browser. SubscriptionID is set for monthly donations.
type CreateIntentResponse struct {
	ClientSecret   string `json:"clientSecret"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
}

// ErrorResponse is the error shape for every failure class on this API.
type ErrorResponse struct {
	Error string `json:"error"`
}
