package normalize

import (
	"strings"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/item"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/record"
)

type companyRecord struct {
	ID          record.ID `json:"id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	FaviconURL  string    `json:"favicon_url"`
	Description string    `json:"description"`
}

// Companies normalizes company records. The icon falls back to the
// domain's favicon when the record carries none.
func Companies(records []record.Raw) Output {
	return each(records, func(r companyRecord) (item.Item, error) {
		name := strings.TrimSpace(r.Name)
		if err := requireIdentity(r.ID, name); err != nil {
			return item.Item{}, err
		}
		domain := strings.TrimSpace(r.Domain)
		icon := strings.TrimSpace(r.FaviconURL)
		if icon == "" && domain != "" {
			icon = "https://" + domain + "/favicon.ico"
		}
		return item.New(r.ID.String(), kind.Company, name, firstNonEmpty(domain, r.Description), icon), nil
	})
}
