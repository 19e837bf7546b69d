package normalize

import (
	"strings"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/item"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/record"
)

type personRecord struct {
	ID              record.ID `json:"id"`
	Name            string    `json:"name"`
	ExternalID      string    `json:"external_id"`
	ProfileImageURL string    `json:"profile_image_url"`
	Headline        string    `json:"headline"`
}

// People normalizes person records.
func People(records []record.Raw) Output {
	return each(records, func(r personRecord) (item.Item, error) {
		name := strings.TrimSpace(r.Name)
		if err := requireIdentity(r.ID, name); err != nil {
			return item.Item{}, err
		}
		subtitle := strings.TrimSpace(r.Headline)
		if ext := strings.TrimPrefix(strings.TrimSpace(r.ExternalID), "@"); subtitle == "" && ext != "" {
			subtitle = "@" + ext
		}
		return item.New(r.ID.String(), kind.Person, name, subtitle, strings.TrimSpace(r.ProfileImageURL)), nil
	})
}
