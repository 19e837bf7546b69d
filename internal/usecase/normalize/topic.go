package normalize

import (
	"strings"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/item"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/record"
)

type topicRecord struct {
	ID           record.ID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CategoryIcon string    `json:"category_icon"`
	Description  string    `json:"description"`
}

// Topics normalizes topic records.
func Topics(records []record.Raw) Output {
	return each(records, func(r topicRecord) (item.Item, error) {
		name := strings.TrimSpace(r.Name)
		if err := requireIdentity(r.ID, name); err != nil {
			return item.Item{}, err
		}
		return item.New(
			r.ID.String(), kind.Topic, name,
			firstNonEmpty(r.Category, r.Description), strings.TrimSpace(r.CategoryIcon),
		), nil
	})
}
