package config

type MapsConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider: getEnv("MAPS_PROVIDER", "google"),
		APIKey:   getEnv("GOOGLE_MAPS_API_KEY", ""),
	}
}
