package tools

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/semverx"
)

// FindVersionRequest is the input to the Find-version tool.
type FindVersionRequest struct {
	Library       string
	TargetVersion string
}

// FindVersionResponse is the output of the Find-version tool. Found reports
// whether TargetVersion resolved to a stored semver version; Unversioned
// reports, independently, whether the library also has unversioned docs.
type FindVersionResponse struct {
	Library     string
	Version     string
	Found       bool
	Unversioned bool
}

// FindVersion resolves the best stored version for a library against the
// target version query (§4.9, §6). A resolution failure is only an error
// when the library has no unversioned docs to fall back to.
func (t *Tools) FindVersion(ctx context.Context, req FindVersionRequest) (FindVersionResponse, error) {
	lib, err := t.findLibrary(ctx, req.Library)
	if err != nil {
		return FindVersionResponse{}, err
	}

	resolved, ok := semverx.Resolve(lib.Versions, req.TargetVersion)
	if ok {
		return FindVersionResponse{Library: lib.Library, Version: resolved, Found: true, Unversioned: lib.Unversioned}, nil
	}

	if lib.Unversioned {
		return FindVersionResponse{Library: lib.Library, Unversioned: true}, nil
	}

	return FindVersionResponse{}, fmt.Errorf("%w: %s has no version matching %q", core.ErrVersionNotFound, lib.Library, req.TargetVersion)
}
