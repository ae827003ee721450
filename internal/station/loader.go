package station

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/provider/resilience"
)

// ErrNoStations is returned when a loader produces an empty catalog.
var ErrNoStations = errors.New("no stations loaded")

// Loader returns the station records used to build the registry.
type Loader interface {
	Load(ctx context.Context) ([]Station, error)
}

// FileLoader reads station records from a JSON file.
type FileLoader struct {
	Path   string
	Logger zerolog.Logger
}

// Load implements Loader.
func (l FileLoader) Load(_ context.Context) ([]Station, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("reading stations file: %w", err)
	}
	stations, err := DecodeStations(data, l.Logger)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", l.Path, err)
	}
	l.Logger.Info().
		Str("path", l.Path).
		Int("stations", len(stations)).
		Msg("station registry loaded from file")
	return stations, nil
}

// HTTPLoader fetches station records from a remote catalog endpoint.
type HTTPLoader struct {
	URL          string
	Client       *resilience.Client
	Health       *resilience.Registry
	ProviderName string
	Logger       zerolog.Logger
}

// Load implements Loader.
func (l HTTPLoader) Load(ctx context.Context) ([]Station, error) {
	name := l.ProviderName
	if name == "" {
		name = "station-catalog"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.Client.DoWithContext(ctx, req)
	if err != nil {
		l.recordFailure(name, err)
		return nil, fmt.Errorf("fetching station catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("station catalog returned status %d", resp.StatusCode)
		l.recordFailure(name, err)
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		l.recordFailure(name, err)
		return nil, fmt.Errorf("reading catalog body: %w", err)
	}

	stations, err := DecodeStations(data, l.Logger)
	if err != nil {
		l.recordFailure(name, err)
		return nil, err
	}
	if l.Health != nil {
		l.Health.RecordSuccess(name)
	}

	l.Logger.Info().
		Str("url", l.URL).
		Int("stations", len(stations)).
		Msg("station registry loaded from catalog")
	return stations, nil
}

func (l HTTPLoader) recordFailure(name string, err error) {
	if l.Health != nil {
		l.Health.RecordFailure(name, err)
	}
}

// GeneratedLoader builds a synthetic station network.
type GeneratedLoader struct {
	Config NetworkConfig
	Logger zerolog.Logger
}

// Load implements Loader.
func (l GeneratedLoader) Load(_ context.Context) ([]Station, error) {
	stations := GenerateNetwork(l.Config)
	l.Logger.Info().
		Int("stations", len(stations)).
		Uint64("seed", l.Config.Seed).
		Msg("station registry generated")
	return stations, nil
}

// DistrictLoader restricts another loader to a single district.
type DistrictLoader struct {
	Next     Loader
	District string
}

// Load implements Loader.
func (l DistrictLoader) Load(ctx context.Context) ([]Station, error) {
	all, err := l.Next.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Station, 0, len(all)/8)
	for _, st := range all {
		if strings.EqualFold(st.District, l.District) {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: district %q", ErrNoStations, l.District)
	}
	return out, nil
}

// DecodeStations decodes a JSON array of station records, or an object with a
// "stations" array. Records that cannot be translated are skipped and logged.
func DecodeStations(data []byte, logger zerolog.Logger) ([]Station, error) {
	data = bytes.TrimSpace(data)

	var raws []json.RawMessage
	if len(data) > 0 && data[0] == '{' {
		var envelope struct {
			Stations []json.RawMessage `json:"stations"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("decoding station envelope: %w", err)
		}
		raws = envelope.Stations
	} else if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decoding station list: %w", err)
	}

	stations := make([]Station, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		st, err := DecodeRecord(raw)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("skipping station record")
			continue
		}
		if _, dup := seen[st.ID]; dup {
			logger.Warn().Str("station_id", st.ID).Msg("skipping duplicate station record")
			continue
		}
		seen[st.ID] = struct{}{}
		stations = append(stations, st)
	}

	if len(stations) == 0 {
		return nil, ErrNoStations
	}
	return stations, nil
}
