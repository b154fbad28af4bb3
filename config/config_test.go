package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "")
	t.Setenv("PRICE_CEILING", "")
	t.Setenv("CSV_DELIMITER", "")

	cfg := Load()
	assert.Equal(t, "csv", cfg.Source)
	assert.Equal(t, ',', cfg.CSVDelimiter)
	assert.Equal(t, 1500.0, cfg.PriceCeiling)
	assert.Equal(t, "ignore", cfg.EncodingErrors)
	assert.Equal(t, "cleaned", cfg.PricePerBedSource)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/listings.db")
	t.Setenv("PRICE_CEILING", "900.5")
	t.Setenv("CSV_DELIMITER", "tab")
	t.Setenv("HEAD_ROWS", "not-a-number")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.Source)
	assert.Equal(t, "/tmp/listings.db", cfg.DSN())
	assert.Equal(t, 900.5, cfg.PriceCeiling)
	assert.Equal(t, '\t', cfg.CSVDelimiter)
	assert.Equal(t, 5, cfg.HeadRows)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		Source:           "postgres",
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "rental_db",
		PostgresSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rental_db sslmode=disable", cfg.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		delimiter string
		wantErr   bool
	}{
		{"defaults", "", "", false},
		{"filtered", "filtered", ";", false},
		{"unknown source", "raw", "", true},
		{"multi character delimiter", "", ";;", true},
		{"quote delimiter", "", `"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PRICE_PER_BED_SOURCE", tt.source)
			t.Setenv("CSV_DELIMITER", tt.delimiter)

			err := Load().Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
