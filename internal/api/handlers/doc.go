// Package handlers implements the HTTP handlers of the sellerlink API:
// account linking, order retrieval, quota and health probes.
package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
