package dto

// DiscoveredDevice is an address that answered a subnet probe, wrapped with a
// synthesized name and stream URL. It lives only in one scan's result set; the
// operator promotes it to a camera record explicitly.
type DiscoveredDevice struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	StreamURL string `json:"stream_url"`
	Status    string `json:"status"`
}

type DiscoveryResponse struct {
	Devices []DiscoveredDevice `json:"devices"`
	Total   int                `json:"total"`
}
