package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roman-kulish/starpi-replay/internal/flightmodel"
	"github.com/roman-kulish/starpi-replay/internal/log"
)

func TestNewConfigFromArgs(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{FlightID: "flight-001", Format: FormatSummary},
		},
		{
			name: "csv export",
			args: []string{"-f", "flight-003", "-format", "CSV", "-variant", "compact", "-o", "out.csv"},
			want: Config{FlightID: "flight-003", Format: FormatCSV, Variant: flightmodel.VariantCompact, OutputFile: "out.csv"},
		},
		{name: "empty flight", args: []string{"-f", " "}, wantErr: true},
		{name: "format", args: []string{"-format", "xml"}, wantErr: true},
		{name: "variant", args: []string{"-variant", "deluxe"}, wantErr: true},
		{name: "unknown flag", args: []string{"-db", "x"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewConfigFromArgs(tc.args, io.Discard)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Seed != nil {
				t.Errorf("seed = %d, want unset", *c.Seed)
			}
			c.Seed = nil
			if *c != tc.want {
				t.Errorf("config = %+v, want %+v", *c, tc.want)
			}
		})
	}
}

func TestNewConfigFromArgs_Seed(t *testing.T) {
	c, err := NewConfigFromArgs([]string{"-seed", "0"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Seed == nil || *c.Seed != 0 {
		t.Errorf("explicit zero seed was not kept: %v", c.Seed)
	}
}

func testConfig(format OutputFormat, variant flightmodel.Variant) *Config {
	seed := int64(3)
	return &Config{FlightID: "flight-002", Seed: &seed, Variant: variant, Format: format}
}

func TestWrite_CSV(t *testing.T) {
	testCases := []struct {
		name    string
		variant flightmodel.Variant
		wantMag bool
	}{
		{name: "sensor suite", variant: flightmodel.VariantSensorSuite, wantMag: true},
		{name: "compact", variant: flightmodel.VariantCompact, wantMag: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := write(context.Background(), testConfig(FormatCSV, tc.variant), log.Discard(), &buf); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			rows, err := csv.NewReader(&buf).ReadAll()
			if err != nil {
				t.Fatalf("invalid csv: %v", err)
			}
			if len(rows) != 352 {
				t.Fatalf("got %d rows, want header and 351 samples", len(rows))
			}

			header := rows[0]
			if header[0] != "time" || header[1] != "phase" || header[2] != "altitude" || header[len(header)-1] != "gpsAltitude" {
				t.Errorf("header = %v", header)
			}

			magX := -1
			for i, h := range header {
				if h == "magX" {
					magX = i
				}
			}
			if got := rows[1][magX] != ""; got != tc.wantMag {
				t.Errorf("magX column filled = %v, want %v", got, tc.wantMag)
			}

			if rows[1][0] != "0.0" || rows[1][1] != "standby" {
				t.Errorf("first row = %v", rows[1][:2])
			}
			if rows[351][0] != "35.0" || rows[351][1] != "landed" {
				t.Errorf("last row = %v", rows[351][:2])
			}
		})
	}
}

func TestWrite_Summary(t *testing.T) {
	var buf bytes.Buffer
	if err := write(context.Background(), testConfig(FormatSummary, flightmodel.VariantSensorSuite), log.Discard(), &buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"FLIGHT-002  success",
		"2024-12-15 10:15:42",
		"site         37° 46.",
		"' N 122° 25.",
		"00:35.0, 351 samples",
		"apogee       1,250 m",
		"Nose Cone, Payload Bay",
		"1st  Liftoff    T+00:03:00",
		"altitude     0 .. 1,250 m",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary does not contain %q:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFlight(t *testing.T) {
	config := testConfig(FormatCSV, flightmodel.VariantSensorSuite)
	config.FlightID = "flight-404"

	if err := write(context.Background(), config, log.Discard(), io.Discard); err == nil {
		t.Error("expected error for unknown flight")
	}
}

func TestRun_OutputFile(t *testing.T) {
	config := testConfig(FormatCSV, flightmodel.VariantCompact)
	config.OutputFile = filepath.Join(t.TempDir(), "flight-002.csv")

	if err := Run(context.Background(), config, log.Discard()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(config.OutputFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), strings.Join(Header(), ",")+"\n") {
		t.Errorf("output does not start with the header")
	}
}
