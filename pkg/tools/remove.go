package tools

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// Remove deletes every document indexed for a (library, version).
func (t *Tools) Remove(ctx context.Context, lib core.Library) error {
	if err := t.store.RemoveLibraryVersion(ctx, lib.Fold()); err != nil {
		return fmt.Errorf("remove %s@%s: %w", lib.Name, lib.Version, err)
	}

	return nil
}
