package models

// Runtime settings stored in the settings table and loaded per
// operation so that changes take effect without a redeploy.

// Settings keys in the settings table.
const (
	SettingsKeyServer       = "server"
	SettingsKeyStorage      = "storage"
	SettingsKeyVerification = "verification"
)

// Environment names used to gate side effects.
const (
	EnvLive    = "live"
	EnvStaging = "staging"
)

// ServerSettings configures environment-dependent behavior and the
// panel URLs embedded in outbound notifications.
type ServerSettings struct {
	Env                  string `json:"env" dynamodbav:"env"`
	ProfessionalPanelURL string `json:"professional_panel_url" dynamodbav:"professional_panel_url"`
	BriefcasePanelURL    string `json:"briefcase_panel_url" dynamodbav:"briefcase_panel_url"`
	SupportEmail         string `json:"support_email" dynamodbav:"support_email"`
}

// IsLive reports whether side effects should target production
// destinations.
func (s *ServerSettings) IsLive() bool {
	return s != nil && s.Env == EnvLive
}

// StorageSettings configures object storage for uploaded assets.
type StorageSettings struct {
	Region       string `json:"region" dynamodbav:"region"`
	Bucket       string `json:"bucket" dynamodbav:"bucket"`
	TempBucket   string `json:"temp_bucket" dynamodbav:"temp_bucket"`
	URLPrefix    string `json:"url_prefix" dynamodbav:"url_prefix"`
	UploadFolder string `json:"upload_folder" dynamodbav:"upload_folder"`
}

// VerificationSettings configures the third-party license verification
// integration and how its failures are interpreted.
type VerificationSettings struct {
	Enabled            bool     `json:"enabled" dynamodbav:"enabled"`
	Endpoint           string   `json:"endpoint" dynamodbav:"endpoint"`
	Username           string   `json:"username" dynamodbav:"username"`
	Password           string   `json:"password" dynamodbav:"password"`
	IgnoreEmailPattern string   `json:"ignore_email_pattern" dynamodbav:"ignore_email_pattern"`
	ErrorPatterns      []string `json:"error_patterns" dynamodbav:"error_patterns"`
	GenericError       string   `json:"generic_error" dynamodbav:"generic_error"`
	NotificationEmail  string   `json:"notification_email" dynamodbav:"notification_email"`
}
