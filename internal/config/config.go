package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultConfigPath = "config.json"

// Config mirrors the "params" object of config.json.
type Config struct {
	CredentialsPath string `json:"credentials_path"`
	SpreadsheetID   string `json:"spreadsheet_id"`
	SheetName       string `json:"sheet_name"`
	SecInterval     int    `json:"sec_interval"`
	CamNo           int    `json:"cam_no"`

	TokenPath         string  `json:"token_path"`
	BackupPath        string  `json:"backup_path"`
	IDPrefix          *string `json:"id_prefix"`
	ReadRange         string  `json:"read_range"`
	Locale            string  `json:"locale"`
	Timezone          string  `json:"timezone"`
	DatabaseURL       string  `json:"database_url"`
	JournalReplay     bool    `json:"journal_replay"`
	DiscordWebhookURL string  `json:"discord_webhook_url"`
	StatusAddr        string  `json:"status_addr"`
	BadgeDir          string  `json:"badge_dir"`
}

type file struct {
	Params *Config `json:"params"`
}

// Load reads the configuration file named by QRATTEND_CONFIG (default
// config.json), applies environment overrides and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement.
	}

	path := os.Getenv("QRATTEND_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes path without validating it.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	var doc file
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("config: %s invalide: %w", path, err)
	}
	if doc.Params == nil {
		return nil, fmt.Errorf("config: %s doit contenir un objet \"params\"", path)
	}
	return doc.Params, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DATABASE_URL":        &c.DatabaseURL,
		"DISCORD_WEBHOOK_URL": &c.DiscordWebhookURL,
		"STATUS_ADDR":         &c.StatusAddr,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
}

// validate applique les règles et complète les valeurs par défaut.
func (c *Config) validate() error {
	required := map[string]string{
		"credentials_path": c.CredentialsPath,
		"spreadsheet_id":   c.SpreadsheetID,
		"sheet_name":       c.SheetName,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("config: %s est requis et ne peut pas être vide", name)
		}
	}
	if c.SecInterval <= 0 {
		return fmt.Errorf("config: sec_interval doit être un nombre de secondes positif (reçu %d)", c.SecInterval)
	}
	if c.CamNo < 0 {
		return fmt.Errorf("config: cam_no doit être positif ou nul (reçu %d)", c.CamNo)
	}

	if c.TokenPath == "" {
		c.TokenPath = "token.json"
	}
	if c.BackupPath == "" {
		c.BackupPath = "Backup.txt"
	}
	if c.IDPrefix == nil {
		p := "ID: "
		c.IDPrefix = &p
	}
	if c.ReadRange == "" {
		c.ReadRange = "A:F"
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.BadgeDir == "" {
		c.BadgeDir = "badges"
	}

	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: database_url invalide (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: database_url invalide (%q): scheme ou host manquant", c.DatabaseURL)
		}
	}
	if c.JournalReplay && c.DatabaseURL == "" {
		return fmt.Errorf("config: journal_replay nécessite database_url")
	}
	return nil
}

// SyncInterval is sec_interval as a duration.
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.SecInterval) * time.Second
}

// Prefix returns the QR payload prefix; an explicit "" disables stripping.
func (c *Config) Prefix() string {
	if c.IDPrefix == nil {
		return ""
	}
	return *c.IDPrefix
}
