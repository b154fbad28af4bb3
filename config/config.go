package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// Sources of the price per bed column.
const (
	PricePerBedCleaned  = "cleaned"
	PricePerBedFiltered = "filtered"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Source         string
	DatasetPath    string
	CSVDelimiter   rune
	EncodingErrors string
	Charset        string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SQLitePath       string
	SourceQuery      string
	MaxRetries       int

	PriceCeiling      float64
	HeadRows          int
	PreviewRows       int
	PricePerBedSource string

	ChartOutputDir string
	ChartFormat    string
	ReportPDFPath  string
	ChromeBin      string

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Source:         strings.ToLower(getEnv("DATASET_SOURCE", "csv")),
		DatasetPath:    getEnv("DATASET_PATH", "./data/listings.csv"),
		CSVDelimiter:   getEnvRune("CSV_DELIMITER", ','),
		EncodingErrors: strings.ToLower(getEnv("ENCODING_ERRORS", "ignore")),
		Charset:        getEnv("DATASET_CHARSET", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "./data/listings.db"),
		SourceQuery:      getEnv("SOURCE_QUERY", "SELECT * FROM listings"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		PriceCeiling:      getEnvFloat("PRICE_CEILING", 1500),
		HeadRows:          getEnvInt("HEAD_ROWS", 5),
		PreviewRows:       getEnvInt("PREVIEW_ROWS", 40),
		PricePerBedSource: strings.ToLower(getEnv("PRICE_PER_BED_SOURCE", PricePerBedCleaned)),

		ChartOutputDir: getEnv("CHART_OUTPUT_DIR", "./output/charts"),
		ChartFormat:    strings.ToLower(getEnv("CHART_FORMAT", "svg")),
		ReportPDFPath:  getEnv("REPORT_PDF_PATH", ""),
		ChromeBin:      getEnv("CHROME_BIN", ""),

		LogLevel: getEnv("LOG_LEVEL", ""),
	}
}

// Validate reports settings that Load could not turn into usable values.
func (c *Config) Validate() error {
	var errs []error
	switch c.PricePerBedSource {
	case PricePerBedCleaned, PricePerBedFiltered:
	default:
		errs = append(errs, fmt.Errorf("config: PRICE_PER_BED_SOURCE %q (want %s or %s)",
			c.PricePerBedSource, PricePerBedCleaned, PricePerBedFiltered))
	}
	if c.CSVDelimiter == utf8.RuneError || c.CSVDelimiter == '"' || c.CSVDelimiter == '\r' || c.CSVDelimiter == '\n' {
		errs = append(errs, errors.New("config: CSV_DELIMITER must be a single character other than quote or newline"))
	}
	return errors.Join(errs...)
}

// DSN returns the connection string for the configured SQL source.
func (c *Config) DSN() string {
	if c.Source == "sqlite" {
		return c.SQLitePath
	}
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

// getEnvRune reads a single character; "\t" and "tab" mean a tab. Longer
// values yield utf8.RuneError, which Validate rejects.
func getEnvRune(key string, fallback rune) rune {
	val := os.Getenv(key)
	switch {
	case val == "":
		return fallback
	case val == `\t` || strings.EqualFold(val, "tab"):
		return '\t'
	case utf8.RuneCountInString(val) != 1:
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(val)
	return r
}
