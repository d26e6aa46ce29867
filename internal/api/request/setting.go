package request

// UpdateProviderKey is the body for storing the market provider API key.
type UpdateProviderKey struct {
	APIKey string `json:"apiKey"`
}
