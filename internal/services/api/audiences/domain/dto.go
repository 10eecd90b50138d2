// Package domain defines the audiences API module types
package domain

// VerifyInput carries credentials to check against the marketing API
// swagger:model
type VerifyInput struct {
	APIKey string `json:"api_key" validate:"required,min=10,mc_api_key" example:"0123456789abcdef0123456789abcdef-us7"`
}

// VerifyOutput reports the outcome of a credential check
type VerifyOutput struct {
	Healthy    bool   `json:"healthy"    example:"true"`
	Datacenter string `json:"datacenter" example:"us7"`
	Audiences  int    `json:"audiences"  example:"2"`
}
