package config

type OAuthConfig struct {
	Google   *GoogleOAuthConfig   `yaml:"google"`
	Firebase *FirebaseAuthConfig  `yaml:"firebase"`
}

type GoogleOAuthConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
}

// FirebaseAuthConfig covers clients that still authenticate against
// Firebase Auth and exchange the resulting ID token with this service.
type FirebaseAuthConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

func loadOAuthConfig() *OAuthConfig {
	return &OAuthConfig{
		Google: &GoogleOAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
			Scopes:       getEnvAsSlice("GOOGLE_SCOPES", []string{"email", "profile"}),
		},
		Firebase: &FirebaseAuthConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		},
	}
}
