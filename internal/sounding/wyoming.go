package sounding

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/imaginasean/weather-modeling/pkg/logger"
)

// WyomingConfig configures the University of Wyoming sounding client.
type WyomingConfig struct {
	BaseURL               string `toml:"base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// DefaultWyomingConfig returns the stock Wyoming client configuration.
func DefaultWyomingConfig() WyomingConfig {
	return WyomingConfig{
		BaseURL:               "https://weather.uwyo.edu/cgi-bin/sounding",
		RequestTimeoutSeconds: 15,
	}
}

// WyomingClient fetches observed rawinsonde soundings from the University of
// Wyoming archive.
type WyomingClient struct {
	config     WyomingConfig
	httpClient *http.Client
	logger     *logger.Logger
}

// NewWyomingClient creates a new Wyoming sounding client.
func NewWyomingClient(config WyomingConfig, log *logger.Logger) *WyomingClient {
	return &WyomingClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.RequestTimeoutSeconds) * time.Second,
		},
		logger: log.Named("wyoming-client"),
	}
}

// Fetch retrieves the text sounding for a station at the given launch time
// ("0000" or "1200" Z) for today's date.
func (c *WyomingClient) Fetch(ctx context.Context, stationID int, fromTime string) (string, error) {
	now := time.Now().UTC()
	url := fmt.Sprintf(
		"%s?region=naconf&TYPE=TEXT%%3ALIST&YEAR=%d&MONTH=%d&DAY=%d&FROM=%s&TO=%s&STNM=%d",
		c.config.BaseURL, now.Year(), int(now.Month()), now.Day(), fromTime, fromTime, stationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build sounding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching sounding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sounding archive returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading sounding response: %w", err)
	}
	return string(body), nil
}

// ParseWyomingText parses the fixed-column sounding listing into profile
// rows. Only rows with valid temperature and dewpoint inside the plausible
// pressure range survive; "***" marks missing values.
func ParseWyomingText(text string) []ProfileRow {
	var rows []ProfileRow
	inData := false

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "PRES") && strings.Contains(line, "HGHT") && strings.Contains(line, "TEMP") {
			inData = true
			continue
		}
		if !inData {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "Station") || strings.HasPrefix(trimmed, "(") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}
		pres, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || pres < 50 || pres > 1050 {
			continue
		}
		temp, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			continue
		}
		dwpt, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			continue
		}
		// Enforce strictly decreasing pressure; duplicate levels appear in
		// some listings and would fail profile validation downstream.
		if len(rows) > 0 && pres >= rows[len(rows)-1].PressureHPa {
			continue
		}
		rows = append(rows, ProfileRow{PressureHPa: pres, TempC: temp, DewpointC: dwpt})
	}
	return rows
}

// ParseIndices extracts the externally computed CAPE/CIN stability indices
// from the listing's "Station information and sounding indices" block.
// Missing indices yield 0.
func ParseIndices(text string) (capeJkg, cinJkg float64) {
	for _, line := range strings.Split(text, "\n") {
		if v, ok := indexValue(line, "Convective Available Potential Energy:"); ok {
			capeJkg = v
		}
		if v, ok := indexValue(line, "Convective Inhibition:"); ok {
			cinJkg = v
		}
	}
	return capeJkg, cinJkg
}

func indexValue(line, label string) (float64, bool) {
	i := strings.Index(line, label)
	if i < 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(line[i+len(label):]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
