package splitter

import "github.com/ksysoev/docindex/pkg/core"

// Coalesce merges adjacent chunks produced by the section and content
// splitters whenever the merged content fits opts.Max, never merging across a
// new H1/H2 boundary (§4.5 "Greedy coalescer"). opts.Min is not consulted:
// chunks are merged whether or not they already reach it, and a chunk below
// it is left as is when the next merge would exceed opts.Max or cross a
// boundary. It never splits what the caller already produced.
func Coalesce(chunks []core.Chunk, opts Options) []core.Chunk {
	if len(chunks) == 0 {
		return nil
	}

	opts = opts.withDefaults()

	out := make([]core.Chunk, 0, len(chunks))
	cur := chunks[0]

	for _, next := range chunks[1:] {
		if isHardBoundary(next) {
			out = append(out, cur)
			cur = next

			continue
		}

		merged := mergeChunks(cur, next)
		if len(merged.Content) > opts.Max {
			out = append(out, cur)
			cur = next

			continue
		}

		cur = merged
	}

	out = append(out, cur)

	return out
}

// isHardBoundary reports whether chunk opens a new top-level section: a
// heading piece at level 1 or 2 (§4.5 "a hard boundary at any new H1/H2").
func isHardBoundary(c core.Chunk) bool {
	return c.HasType(core.SectionHeading) && c.Level > 0 && c.Level <= 2
}

func mergeChunks(a, b core.Chunk) core.Chunk {
	types := make(map[core.SectionType]struct{}, len(a.Types)+len(b.Types))
	for t := range a.Types {
		types[t] = struct{}{}
	}

	for t := range b.Types {
		types[t] = struct{}{}
	}

	level := a.Level
	if b.Level < level {
		level = b.Level
	}

	content := a.Content
	if content != "" && b.Content != "" {
		content += "\n\n"
	}

	content += b.Content

	return core.Chunk{
		Types:   types,
		Content: content,
		Level:   level,
		Path:    mergePath(a.Path, b.Path),
	}
}

// mergePath implements the merged-section path rule: the deeper path when
// one is a prefix of the other, else their longest common prefix, else empty
// (§4.5 "Merged-section metadata").
func mergePath(a, b core.SectionPath) core.SectionPath {
	switch {
	case isPathPrefix(a, b):
		return b
	case isPathPrefix(b, a):
		return a
	default:
		return commonPathPrefix(a, b)
	}
}

func isPathPrefix(prefix, full core.SectionPath) bool {
	if len(prefix) > len(full) {
		return false
	}

	for i := range prefix {
		if prefix[i] != full[i] {
			return false
		}
	}

	return true
}

func commonPathPrefix(a, b core.SectionPath) core.SectionPath {
	var out core.SectionPath

	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			break
		}

		out = append(out, a[i])
	}

	return out
}
