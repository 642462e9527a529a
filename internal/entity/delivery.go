package entity

// DemoMessageID is returned instead of a provider id when no credentials are configured.
const DemoMessageID = "DEMO_MODE"

// DeliveryResult is the outcome of one attempt to send the guide.
type DeliveryResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
