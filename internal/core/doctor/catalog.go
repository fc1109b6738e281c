package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/dashbell/internal/core/notify"
)

// CatalogCheck reports catalog size and read IDs that match no catalog entry.
type CatalogCheck struct {
	catalog *notify.Catalog
	readIDs []string
	source  string
}

// NewCatalogCheck creates a new catalog check. source names where the
// catalog came from.
func NewCatalogCheck(catalog *notify.Catalog, readIDs []string, source string) *CatalogCheck {
	return &CatalogCheck{catalog: catalog, readIDs: readIDs, source: source}
}

func (c *CatalogCheck) Name() string {
	return "Catalog"
}

func (c *CatalogCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	result.Items = append(result.Items, CheckItem{
		Label:  c.source,
		Status: StatusPass,
		Detail: fmt.Sprintf("%d notification(s)", c.catalog.Len()),
	})

	var orphans []string
	for _, id := range c.readIDs {
		if _, ok := c.catalog.Lookup(id); !ok {
			orphans = append(orphans, id)
		}
	}

	if len(orphans) > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "read ids",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d id(s) not in catalog: %s", len(orphans), strings.Join(orphans, ", ")),
		})
	}

	return result
}
