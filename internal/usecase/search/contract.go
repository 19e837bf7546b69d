package search

import (
	"time"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
)

// Observer receives search outcomes for instrumentation.
type Observer interface {
	RecordsSkipped(k kind.Kind, n int)
	SearchCompleted(filter kind.Kind, returned int, elapsed time.Duration)
	SearchRejected()
}

type nopObserver struct{}

func (nopObserver) RecordsSkipped(kind.Kind, int)                  {}
func (nopObserver) SearchCompleted(kind.Kind, int, time.Duration) {}
func (nopObserver) SearchRejected()                                {}
