package request

// CreateAccount is the body for creating an account.
type CreateAccount struct {
	Name string `json:"name"`
}
