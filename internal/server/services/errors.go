package services

import (
	"context"
	"errors"
	"fmt"

	"socialnet/internal/common"
)

// mapStoreError converts a repository failure into a service-level error.
// A caller-imposed deadline becomes ErrUpstreamTimeout; everything else is
// wrapped as an upstream failure. Taxonomy sentinels pass through untouched
// so transport can match them with errors.Is.
func mapStoreError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return common.ErrUpstreamTimeout
	}
	return fmt.Errorf("store error: %w", err)
}
