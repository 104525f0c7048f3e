package handler

// errorResponse mirrors the envelope rendered by the central error
// handler; declared here so swagger can reference it.
type errorResponse struct {
	Error string `json:"error"`
}

// listResponse is the envelope for every paginated collection.
type listResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}