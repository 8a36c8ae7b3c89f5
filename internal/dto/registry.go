package dto

// RegistrySearchRequest holds the query parameters of GET /cnpj.
type RegistrySearchRequest struct {
	Q     string `query:"q"`
	State string `query:"state"`
}

// UpdateAPIKeyRequest replaces the stored registry API key.
type UpdateAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}
