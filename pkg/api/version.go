package api

// Version of the procatsrv API.
const Version = "0.1.0"

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version string `json:"version"`
}
