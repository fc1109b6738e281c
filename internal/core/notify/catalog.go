package notify

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedCatalog []byte

// Catalog is the fixed, ordered list of notifications the dashboard knows
// about. It is immutable after construction.
type Catalog struct {
	entries []Notification
	index   map[string]int
}

// NewCatalog builds a catalog from entries, keeping their order. IDs must
// be non-empty and unique.
func NewCatalog(entries []Notification) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Notification, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	var errs criterio.FieldErrorsBuilder
	for i, n := range entries {
		field := fmt.Sprintf("notifications[%d].id", i)
		if strings.TrimSpace(n.ID) == "" {
			errs = errs.Append(field, fmt.Errorf("id is required"))
			continue
		}
		if prev, ok := c.index[n.ID]; ok {
			errs = errs.Append(field, fmt.Errorf("duplicate id %q (first at index %d)", n.ID, prev))
			continue
		}
		c.index[n.ID] = i
		c.entries[i] = n
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return c, nil
}

// Entries returns a copy of the catalog in order.
func (c *Catalog) Entries() []Notification {
	out := make([]Notification, len(c.entries))
	copy(out, c.entries)
	return out
}

// IDs returns every notification ID in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, n := range c.entries {
		ids[i] = n.ID
	}
	return ids
}

// Lookup returns the catalog entry with the given ID.
func (c *Catalog) Lookup(id string) (Notification, bool) {
	i, ok := c.index[id]
	if !ok {
		return Notification{}, false
	}
	return c.entries[i], true
}

// Len returns the number of notifications.
func (c *Catalog) Len() int {
	return len(c.entries)
}

type catalogDocument struct {
	Notifications []any `yaml:"notifications"`
}

// LoadCatalog decodes a YAML or JSON document of the form
// {"notifications": [...]} and checks every entry with v. All invalid
// entries are reported together.
func LoadCatalog(r io.Reader, v Validator) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	var (
		errs    criterio.FieldErrorsBuilder
		entries = make([]Notification, 0, len(doc.Notifications))
	)

	for i, raw := range doc.Notifications {
		prefix := fmt.Sprintf("notifications[%d]", i)

		res := v.Check(raw)
		if res.Err == nil {
			entries = append(entries, res.Notification)
			continue
		}

		var fieldErrs criterio.FieldErrors
		if errors.As(res.Err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = errs.Append(prefix+"."+fe.Field, fe.Err)
			}
			continue
		}
		errs = errs.Append(prefix, res.Err)
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return NewCatalog(entries)
}

// SeedCatalog returns the built-in catalog. Its entries are defined by age,
// so timestamps are relative to v's clock.
func SeedCatalog(v Validator) (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(seedCatalog), v)
}
