package normalize

import (
	"strings"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/item"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/record"
)

type storyRecord struct {
	ID               record.ID `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	FeaturedImageURL string    `json:"featured_image_url"`
	Excerpt          string    `json:"excerpt"`
}

// Stories normalizes story records. Stories are named by title.
func Stories(records []record.Raw) Output {
	return each(records, func(r storyRecord) (item.Item, error) {
		title := strings.TrimSpace(r.Title)
		if err := requireIdentity(r.ID, title); err != nil {
			return item.Item{}, err
		}
		subtitle := strings.TrimSpace(r.Excerpt)
		if slug := strings.Trim(strings.TrimSpace(r.Slug), "/"); subtitle == "" && slug != "" {
			subtitle = "/stories/" + slug
		}
		return item.New(r.ID.String(), kind.Story, title, subtitle, strings.TrimSpace(r.FeaturedImageURL)), nil
	})
}
