package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Counter   CounterConfig
	Catalog   CatalogConfig
	SalesLog  SalesLogConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Host  string
	Port  string
	Debug bool
}

// StoreConfig is printed in the receipt header.
type StoreConfig struct {
	Name    string
	Address []string
	TaxID   string
	Phone   string
}

type CounterConfig struct {
	Label                string
	Cashier              string
	CurrencySymbol       string
	ReceiptCurrencyLabel string
	BillStart            int
	AutoFinalizeOnPrint  bool
}

type CatalogConfig struct {
	Path string
}

type SalesLogConfig struct {
	Path string
}

type PrinterConfig struct {
	Type     string
	USBPath  string
	Address  string
	FilePath string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration time.Duration
}

// Load reads .env (if present) and the environment into a Config.
// A missing or unreadable .env is not fatal: the returned error is only a warning
// and the Config is always usable.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	envErr := v.ReadInConfig()
	return FromViper(v), envErr
}

// FromViper applies defaults and builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Host:  v.GetString("APP_HOST"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Store: StoreConfig{
			Name:    v.GetString("STORE_NAME"),
			Address: splitLines(v.GetString("STORE_ADDRESS")),
			TaxID:   v.GetString("STORE_TAX_ID"),
			Phone:   v.GetString("STORE_PHONE"),
		},
		Counter: CounterConfig{
			Label:                v.GetString("COUNTER_LABEL"),
			Cashier:              v.GetString("COUNTER_CASHIER"),
			CurrencySymbol:       v.GetString("CURRENCY_SYMBOL"),
			ReceiptCurrencyLabel: v.GetString("RECEIPT_CURRENCY_LABEL"),
			BillStart:            v.GetInt("BILL_START"),
			AutoFinalizeOnPrint:  v.GetBool("PRINT_AUTO_FINALIZE"),
		},
		Catalog: CatalogConfig{
			Path: v.GetString("CATALOG_PATH"),
		},
		SalesLog: SalesLogConfig{
			Path: v.GetString("SALES_LOG_PATH"),
		},
		Printer: PrinterConfig{
			Type:     v.GetString("PRINTER_TYPE"),
			USBPath:  v.GetString("PRINTER_USB_PATH"),
			Address:  v.GetString("PRINTER_ADDRESS"),
			FilePath: v.GetString("PRINTER_FILE_PATH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: time.Duration(v.GetInt("RATE_LIMIT_DURATION")) * time.Second,
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "counter-billing")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_HOST", "127.0.0.1")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", false)

	v.SetDefault("STORE_NAME", "AAPNA CHEMIST")
	// address lines are separated by "|"
	v.SetDefault("STORE_ADDRESS", "Hathi Bhai Patel Building, Shop No.1/2, Dist.Palghar|"+
		"Bhiwandi, Wada Road, Opp.Police Stn, Kudus-421312.")
	v.SetDefault("STORE_TAX_ID", "27AEGPG3762F1ZM")
	v.SetDefault("STORE_PHONE", "9890581131")

	v.SetDefault("COUNTER_LABEL", "POS")
	v.SetDefault("COUNTER_CASHIER", "Admin")
	v.SetDefault("CURRENCY_SYMBOL", "₹")
	v.SetDefault("RECEIPT_CURRENCY_LABEL", "Rs.")
	v.SetDefault("BILL_START", 1)
	v.SetDefault("PRINT_AUTO_FINALIZE", false)

	v.SetDefault("CATALOG_PATH", "updated_medicine_list.csv")
	v.SetDefault("SALES_LOG_PATH", "sales_log.txt")

	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_FILE_PATH", "receipts.spool")

	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("RATE_LIMIT_REQUESTS", 50)
	v.SetDefault("RATE_LIMIT_DURATION", 1)
}

// Addr returns the host:port the HTTP adapter listens on.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func splitLines(s string) []string {
	var lines []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			lines = append(lines, part)
		}
	}
	return lines
}
