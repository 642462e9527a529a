package mail

// TemplateParams are the variables the guide delivery template receives.
// Field names follow the provider's parameter names.
type TemplateParams struct {
	ToEmail   string `json:"to_email"`
	UserName  string `json:"user_name"`
	Country   string `json:"country"`
	Language  string `json:"language"`
	GuideLink string `json:"guide_link"`
	Timestamp string `json:"timestamp"`
}

// Map returns the params keyed by their provider names.
func (p TemplateParams) Map() map[string]string {
	return map[string]string{
		"to_email":   p.ToEmail,
		"user_name":  p.UserName,
		"country":    p.Country,
		"language":   p.Language,
		"guide_link": p.GuideLink,
		"timestamp":  p.Timestamp,
	}
}

type GatewayConfig struct {
	ServiceID  string
	TemplateID string
	GuideLink  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type EmailSender struct {
	config SMTPConfig
	dialer Dialer
}
