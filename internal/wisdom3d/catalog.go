package wisdom3d

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// DataLoadError means the catalog could not be loaded at all.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load orb data from %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// CatalogOptions controls how raw records become orbs.
type CatalogOptions struct {
	ScalingFactor float64
	ImageBaseURL  string
	OrbRadius     float64
	Client        *http.Client
}

// rawOrb is one element of the orb data file. Pointers tell missing from zero.
type rawOrb struct {
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	Z         *float64 `json:"z"`
	Color     *RGB     `json:"color"`
	Sentence  string   `json:"sentence"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	ImageURL  string   `json:"imageUrl"`
	ImagePath string   `json:"imagePath"`
}

// LoadCatalog reads the orb data from a URL or file. Bad records are skipped
// or defaulted; only an unusable source fails the load.
func LoadCatalog(ctx context.Context, source string, opts CatalogOptions) ([]*Orb, error) {
	if opts.ScalingFactor == 0 {
		opts.ScalingFactor = ScalingFactor
	}
	if opts.OrbRadius <= 0 {
		opts.OrbRadius = OrbRadius
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = ImageBaseURL
	}
	base, err := url.Parse(opts.ImageBaseURL)
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: fmt.Errorf("image base url: %w", err)}
	}

	data, err := readSource(ctx, source, opts.Client)
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &DataLoadError{Source: source, Err: fmt.Errorf("parse orb array: %w", err)}
	}

	log := Log("catalog")
	orbs := make([]*Orb, 0, len(items))
	for i, item := range items {
		var r rawOrb
		if err := json.Unmarshal(item, &r); err != nil {
			log.Warn("skipping malformed orb record", zap.Int("index", i), zap.Error(err))
			continue
		}
		o, err := r.build(base, opts)
		if err != nil {
			log.Warn("skipping orb record", zap.Int("index", i), zap.Error(err))
			continue
		}
		o.ID = OrbID(len(orbs))
		orbs = append(orbs, o)
	}
	if len(orbs) == 0 {
		return nil, &DataLoadError{Source: source, Err: fmt.Errorf("no usable orb records among %d", len(items))}
	}
	log.Info("catalog loaded", zap.String("source", source), zap.Int("orbs", len(orbs)), zap.Int("skipped", len(items)-len(orbs)))
	return orbs, nil
}

func readSource(ctx context.Context, source string, client *http.Client) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.ReadFile(source)
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// build validates and constructs the runtime orb (ID is assigned by the caller).
func (r rawOrb) build(base *url.URL, opts CatalogOptions) (*Orb, error) {
	if r.X == nil || r.Y == nil || r.Z == nil {
		return nil, fmt.Errorf("missing x/y/z")
	}
	if !isFinite(*r.X) || !isFinite(*r.Y) || !isFinite(*r.Z) {
		return nil, fmt.Errorf("non-finite position (%v, %v, %v)", *r.X, *r.Y, *r.Z)
	}
	sentence := strings.TrimSpace(r.Sentence)
	if sentence == "" {
		return nil, fmt.Errorf("empty sentence")
	}
	color := RGB{0.5, 0.5, 0.5}
	if r.Color != nil {
		color = r.Color.clamp01()
	}
	return &Orb{
		Position: mgl64.Vec3{*r.X, *r.Y, *r.Z}.Mul(opts.ScalingFactor),
		Radius:   opts.OrbRadius,
		Color:    color,
		Meta: Metadata{
			Sentence: sentence,
			Title:    orUnknown(r.Title),
			Author:   orUnknown(r.Author),
			ImageURL: resolveImage(base, r.ImageURL, r.ImagePath),
		},
	}, nil
}

// resolveImage prefers an absolute imageUrl, else resolves imagePath against base.
func resolveImage(base *url.URL, abs, rel string) string {
	if abs != "" {
		return abs
	}
	if rel == "" {
		return ""
	}
	ref, err := url.Parse(rel)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknownField
	}
	return s
}
