package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Dataset source
	DatasetBackend string // json | sqlite | sheets
	DatasetPath    string // json backend
	SQLiteDBPath   string // sqlite backend

	// Google Sheets (dataset source and mirror journal)
	GoogleSpreadsheetID       string
	GoogleTransactionsSheet   string
	GoogleSavingsPotsSheet    string
	GoogleBudgetsSheet        string
	GoogleRecurringBillsSheet string
	GoogleJournalSheet        string

	// AMQP (optional mutation event stream)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Advice collaborator
	AdviceAPIURL    string
	AdviceAPIKey    string
	AdviceModel     string
	AdviceMaxTokens int
	AdviceTimeout   time.Duration
	AdviceCacheTTL  time.Duration

	// Presentation defaults
	DefaultPageSize int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DatasetBackend: getEnv("DATASET_BACKEND", "json"),
		DatasetPath:    getEnv("DATASET_PATH", "./data/data.json"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/findash.db"),

		GoogleSpreadsheetID:       getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleTransactionsSheet:   getEnv("GOOGLE_TRANSACTIONS_SHEET", "Transactions"),
		GoogleSavingsPotsSheet:    getEnv("GOOGLE_SAVINGS_POTS_SHEET", "SavingsPots"),
		GoogleBudgetsSheet:        getEnv("GOOGLE_BUDGETS_SHEET", "Budgets"),
		GoogleRecurringBillsSheet: getEnv("GOOGLE_RECURRING_BILLS_SHEET", "RecurringBills"),
		GoogleJournalSheet:        getEnv("GOOGLE_JOURNAL_SHEET", "Journal"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "findash"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "mutation_events"),

		AdviceAPIURL:    getEnv("ADVICE_API_URL", "https://api.anthropic.com/v1/messages"),
		AdviceAPIKey:    getEnv("ADVICE_API_KEY", ""),
		AdviceModel:     getEnv("ADVICE_MODEL", "claude-3-5-sonnet-latest"),
		AdviceMaxTokens: getEnvInt("ADVICE_MAX_TOKENS", 1000),
		AdviceTimeout:   getEnvDuration("ADVICE_TIMEOUT", 60*time.Second),
		AdviceCacheTTL:  getEnvDuration("ADVICE_CACHE_TTL", 5*time.Minute),

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 10),
	}
}

// Validate validates the configuration and returns an error if invalid.
// Problems are collected so a broken environment reports everything at
// once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"json", "sqlite", "sheets"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DatasetBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid dataset backend '%s': must be one of %v", c.DatasetBackend, validBackends))
	}

	switch c.DatasetBackend {
	case "json":
		if c.DatasetPath == "" {
			errors = append(errors, "dataset path cannot be empty when using json backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.AdviceAPIURL != "" {
		if parsedURL, err := url.Parse(c.AdviceAPIURL); err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
			errors = append(errors, fmt.Sprintf("invalid advice API URL '%s'", c.AdviceAPIURL))
		}
	}
	if c.AdviceMaxTokens < 1 {
		errors = append(errors, fmt.Sprintf("invalid advice max tokens %d: must be at least 1", c.AdviceMaxTokens))
	}
	if c.AdviceTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid advice timeout %v: must be at least 1 second", c.AdviceTimeout))
	}

	if c.DefaultPageSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid default page size %d: must be at least 1", c.DefaultPageSize))
	} else if c.DefaultPageSize > 500 {
		errors = append(errors, fmt.Sprintf("invalid default page size %d: must be at most 500", c.DefaultPageSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
