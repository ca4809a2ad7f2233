package checkout

// SubmitResponse is returned once a payment has started.
type SubmitResponse struct {
	Status
	StatusURL string `json:"status_url"`
}
