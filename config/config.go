package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type UploadsConfig struct {
	Dir      string `mapstructure:"dir"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// ShopConfig is the public contact block printed on invoices and served to the storefront.
type ShopConfig struct {
	Name     string `mapstructure:"name" json:"name"`
	Phone    string `mapstructure:"phone" json:"phone"`
	WhatsApp string `mapstructure:"whatsapp" json:"whatsapp"`
	Email    string `mapstructure:"email" json:"email"`
	Address  string `mapstructure:"address" json:"address"`
}

type DeliveryConfig struct {
	FallbackInside  float64 `mapstructure:"fallback_inside"`
	FallbackOutside float64 `mapstructure:"fallback_outside"`
}

type PaginationConfig struct {
	HomePageSize    int `mapstructure:"home_page_size"`
	RelatedPageSize int `mapstructure:"related_page_size"`
	AdminPageSize   int `mapstructure:"admin_page_size"`
}

type InvoiceConfig struct {
	ChromeBin      string `mapstructure:"chrome_bin"`
	LaunchAttempts uint   `mapstructure:"launch_attempts"`
}

type CartConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type LocaleConfig struct {
	LabelsFile string `mapstructure:"labels_file"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Uploads    UploadsConfig    `mapstructure:"uploads"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Shop       ShopConfig       `mapstructure:"shop"`
	Delivery   DeliveryConfig   `mapstructure:"delivery"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Invoice    InvoiceConfig    `mapstructure:"invoice"`
	Cart       CartConfig       `mapstructure:"cart"`
	Locale     LocaleConfig     `mapstructure:"locale"`
	Log        LogConfig        `mapstructure:"log"`
}

var (
	cfg Config
	v   *viper.Viper
	mu  sync.RWMutex
)

const (
	defaultConfigFile = "./feriwala.yaml"
	envPrefix         = "FERIWALA"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.path", "./feriwala.db")
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.max_bytes", 5<<20)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("shop.name", "Feriwala")
	v.SetDefault("shop.phone", "")
	v.SetDefault("shop.whatsapp", "")
	v.SetDefault("shop.email", "")
	v.SetDefault("shop.address", "")
	v.SetDefault("delivery.fallback_inside", 150)
	v.SetDefault("delivery.fallback_outside", 200)
	v.SetDefault("pagination.home_page_size", 40)
	v.SetDefault("pagination.related_page_size", 12)
	v.SetDefault("pagination.admin_page_size", 20)
	v.SetDefault("invoice.chrome_bin", "")
	v.SetDefault("invoice.launch_attempts", 3)
	v.SetDefault("cart.ttl", "720h")
	v.SetDefault("cart.purge_interval", "1h")
	v.SetDefault("locale.labels_file", "./labels.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Default returns the configuration with nothing but defaults applied.
func Default() Config {
	dv := viper.New()
	setDefaults(dv)
	var out Config
	_ = dv.Unmarshal(&out)
	return out
}

// LoadConfig reads the YAML file at path (or ./feriwala.yaml when path is empty),
// overlays FERIWALA_* environment variables and stores the result.
// A missing file is not an error; defaults apply.
func LoadConfig(path string) (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	nv := viper.New()
	setDefaults(nv)
	nv.SetEnvPrefix(envPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if path != "" {
		nv.SetConfigFile(path)
	} else {
		nv.SetConfigName("feriwala")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
	}

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && isNotExist(err)) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var tempCfg Config
	if err := nv.Unmarshal(&tempCfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config to struct: %w", err)
	}
	normalize(&tempCfg)

	v = nv
	cfg = tempCfg
	return cfg, nil
}

// SaveConfig persists the admin-editable settings (shop block and upload folder)
// to the config file in use and swaps them into the live configuration.
// Only those keys and what the file already held are written; defaults and
// environment overrides stay out of the file.
func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if v == nil {
		v = viper.New()
		setDefaults(v)
	}
	normalize(&newCfg)

	target := v.ConfigFileUsed()
	if target == "" {
		target = defaultConfigFile
	}
	fv := viper.New()
	fv.SetConfigFile(target)
	if err := fv.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("reading %s before save: %w", target, err)
	}

	editable := map[string]any{
		"shop.name":     newCfg.Shop.Name,
		"shop.phone":    newCfg.Shop.Phone,
		"shop.whatsapp": newCfg.Shop.WhatsApp,
		"shop.email":    newCfg.Shop.Email,
		"shop.address":  newCfg.Shop.Address,
		"uploads.dir":   newCfg.Uploads.Dir,
	}
	for key, val := range editable {
		fv.Set(key, val)
		v.Set(key, val)
	}

	if err := fv.WriteConfigAs(target); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Use replaces the live configuration without touching disk.
func Use(c Config) {
	mu.Lock()
	defer mu.Unlock()
	normalize(&c)
	cfg = c
}

func normalize(c *Config) {
	if c.Uploads.MaxBytes <= 0 {
		c.Uploads.MaxBytes = 5 << 20
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Invoice.LaunchAttempts == 0 {
		c.Invoice.LaunchAttempts = 3
	}
	if c.Pagination.HomePageSize <= 0 {
		c.Pagination.HomePageSize = 40
	}
	if c.Pagination.RelatedPageSize <= 0 {
		c.Pagination.RelatedPageSize = 12
	}
	if c.Pagination.AdminPageSize <= 0 {
		c.Pagination.AdminPageSize = 20
	}
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
