//go:build integration

package openstreetmap

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func TestClient_Lookup_Integration(t *testing.T) {
	// Test coordinates: Paris
	lat := 48.8566
	lon := 2.3522

	client := NewClient("", "weather-dashboard-tests/1.0", slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Logf("Making API call to OpenStreetMap Nominatim API...")
	t.Logf("Coordinates: lat=%f, lon=%f", lat, lon)

	resp, err := client.Lookup(context.Background(), lat, lon)
	if err != nil {
		t.Fatalf("Failed to get location data: %v", err)
	}

	// Pretty print the raw response
	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if resp.Address.Country != "France" {
		t.Errorf("Country = %q, want France", resp.Address.Country)
	}
	if resp.Address.CountryCode != "fr" {
		t.Errorf("CountryCode = %q, want fr", resp.Address.CountryCode)
	}
	if resp.DisplayName == "" {
		t.Error("DisplayName is empty")
	}
}
