// Package layout describes the fixed table layout of a Kaspi Bank statement:
// the header row in each statement language, the operation names printed in
// the second text column, the expected currency and the page artifacts that
// interrupt the table. The built-in profile is embedded; a custom one can be
// loaded from YAML.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed kaspi.yaml
var defaultProfile []byte

// Header is the column row that opens the transaction table.
type Header struct {
	Language string   `yaml:"language"`
	Columns  []string `yaml:"columns"`
}

// Profile is a parsed statement layout.
type Profile struct {
	Bank         string   `yaml:"bank"`
	DatePattern  string   `yaml:"date_pattern"`
	DateLayout   string   `yaml:"date_layout"`
	Currency     string   `yaml:"currency"`
	CurrencyCode string   `yaml:"currency_code"`
	Headers      []Header `yaml:"headers"`
	Operations   []string `yaml:"operations"`
	Artifacts    []string `yaml:"artifacts"`

	dateRe      *regexp.Regexp
	rowRe       *regexp.Regexp
	artifactRes []*regexp.Regexp
}

// Default returns the built-in Kaspi profile.
func Default() (*Profile, error) {
	return Parse(defaultProfile)
}

// MustDefault is like Default but panics if the embedded profile is invalid.
func MustDefault() *Profile {
	p, err := Default()
	if err != nil {
		panic(fmt.Sprintf("layout: embedded profile: %v", err))
	}
	return p
}

// Load reads a profile from a YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-selected layout file
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout file %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout: %w", err)
	}
	if err := p.compile(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) compile() error {
	if p.DatePattern == "" || p.DateLayout == "" {
		return errors.New("date_pattern and date_layout are required")
	}
	if p.Currency == "" {
		return errors.New("currency is required")
	}
	if len(p.Headers) == 0 {
		return errors.New("at least one header is required")
	}
	for _, h := range p.Headers {
		if len(h.Columns) == 0 {
			return fmt.Errorf("header %q has no columns", h.Language)
		}
	}

	var err error
	if p.dateRe, err = regexp.Compile(`^(` + p.DatePattern + `)(\s|$)`); err != nil {
		return fmt.Errorf("invalid date_pattern: %w", err)
	}

	// <date> <sign> <amount> <currency> [<operation and details>]
	p.rowRe, err = regexp.Compile(`^(?P<date>` + p.DatePattern + `)\s+` +
		`(?P<sign>[+-])\s*` +
		`(?P<amount>\d+(?: \d{3})*(?:[.,]\d+)?)\s*` +
		`(?P<currency>[^\s\d]+)` +
		`(?:\s+(?P<rest>.*))?$`)
	if err != nil {
		return fmt.Errorf("invalid date_pattern: %w", err)
	}

	p.artifactRes = p.artifactRes[:0]
	for _, a := range p.Artifacts {
		re, err := regexp.Compile(a)
		if err != nil {
			return fmt.Errorf("invalid artifact pattern %q: %w", a, err)
		}
		p.artifactRes = append(p.artifactRes, re)
	}

	// Longest names first so "Сатып алу" wins over a shorter prefix.
	sort.SliceStable(p.Operations, func(i, j int) bool {
		return len([]rune(p.Operations[i])) > len([]rune(p.Operations[j]))
	})
	return nil
}

// MatchHeader reports whether line is one of the table header rows.
func (p *Profile) MatchHeader(line string) (Header, bool) {
	fields := strings.Fields(line)
	for _, h := range p.Headers {
		if equalFoldAll(fields, h.Columns) {
			return h, true
		}
	}
	return Header{}, false
}

func equalFoldAll(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// IsArtifact reports whether line is page furniture such as a page counter.
func (p *Profile) IsArtifact(line string) bool {
	line = strings.TrimSpace(line)
	for _, re := range p.artifactRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// HasDatePrefix reports whether line starts with a statement date.
func (p *Profile) HasDatePrefix(line string) bool {
	return p.dateRe.MatchString(strings.TrimSpace(line))
}

// Row is the raw text of the columns of one transaction line.
type Row struct {
	Date     string
	Sign     string
	Amount   string
	Currency string
	Rest     string
}

// MatchRow splits a date-prefixed line into its columns. Column gaps are
// collapsed to single spaces except inside Rest.
func (p *Profile) MatchRow(line string) (Row, bool) {
	m := p.rowRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Row{}, false
	}
	row := Row{}
	for i, name := range p.rowRe.SubexpNames() {
		switch name {
		case "date":
			row.Date = m[i]
		case "sign":
			row.Sign = m[i]
		case "amount":
			row.Amount = m[i]
		case "currency":
			row.Currency = m[i]
		case "rest":
			row.Rest = m[i]
		}
	}
	return row, true
}

var columnGap = regexp.MustCompile(`\s{2,}`)

// SplitOperation separates the operation column from the details column.
// A wide gap between columns decides first; otherwise a known operation
// name must prefix rest.
func (p *Profile) SplitOperation(rest string) (operation, details string, ok bool) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", "", false
	}

	if loc := columnGap.FindStringIndex(rest); loc != nil {
		return rest[:loc[0]], strings.TrimSpace(rest[loc[1]:]), true
	}

	for _, op := range p.Operations {
		if len(rest) < len(op) || !strings.EqualFold(rest[:len(op)], op) {
			continue
		}
		tail := rest[len(op):]
		if tail == "" || tail[0] == ' ' {
			return rest[:len(op)], strings.TrimSpace(tail), true
		}
	}
	return "", "", false
}
