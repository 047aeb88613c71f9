package email

// Config holds email service configuration. Postmark tokens are optional so
// that development setups can fall back to DevSender (see UseDevSender).
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
	DevOutputDir         string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// UseDevSender reports whether no Postmark credentials are configured.
func (c Config) UseDevSender() bool {
	return c.PostmarkServerToken == ""
}
