package splitter

import (
	"errors"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// Split converts markdown content into the final sequence of storage-ready
// Chunks: section splitting, per-section content splitting (falling back to
// RecursiveSplit on ErrMinimumChunkSize), then greedy coalescing (§4.5).
func Split(markdown string, opts Options) ([]core.Chunk, error) {
	opts = opts.withDefaults()

	sections, err := SplitSections(markdown)
	if err != nil {
		return nil, fmt.Errorf("split sections: %w", err)
	}

	var pieces []core.Chunk

	for _, sec := range sections {
		for _, piece := range sec.Content {
			texts, err := splitPiece(piece, opts.Max)
			if err != nil {
				return nil, err
			}

			for _, t := range texts {
				pieces = append(pieces, core.Chunk{
					Types:   map[core.SectionType]struct{}{piece.Type: {}},
					Content: t,
					Level:   sec.Level,
					Path:    sec.Path,
				})
			}
		}
	}

	return Coalesce(pieces, opts), nil
}

func splitPiece(piece core.SectionPiece, max int) ([]string, error) {
	if len(piece.Text) <= max {
		return []string{piece.Text}, nil
	}

	if piece.Type == core.SectionHeading {
		// Headings are never split; an oversized one is left as a single
		// over-max chunk rather than mangled.
		return []string{piece.Text}, nil
	}

	var (
		texts []string
		err   error
	)

	switch piece.Type {
	case core.SectionCode:
		texts, err = SplitCode(piece.Text, max)
	case core.SectionTable:
		texts, err = SplitTable(piece.Text, max)
	default:
		texts, err = SplitText(piece.Text, max)
	}

	if err != nil {
		if errors.Is(err, core.ErrMinimumChunkSize) {
			return RecursiveSplit(piece.Text, max), nil
		}

		return nil, err
	}

	return texts, nil
}
