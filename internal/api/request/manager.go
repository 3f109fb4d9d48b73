package request

// GrantManager holds the request body for granting the hash-manager role.
type GrantManager struct {
	Address string `json:"address" validate:"required,eth_addr"`
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Mobile  string `json:"mobile" validate:"required,min=5,max=20"`
}
