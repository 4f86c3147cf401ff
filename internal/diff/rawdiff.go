package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Chunk is a single change in the raw text diff of two breadcrumbs
// renderings.
type Chunk struct {
	Type    ChangeType `json:"type"`
	Content string     `json:"content,omitempty"`
}

// RawChunks computes a character-level text diff between the on-disk
// breadcrumbs JSON and the rendering that would be written, for the preview's
// transparency view. Equal runs are dropped; whitespace-only chunks are noise
// for pretty-printed JSON and are dropped too.
func RawChunks(base, head string) []Chunk {
	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(base, head, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	chunks := make([]Chunk, 0)
	for _, d := range diffs {
		var chunkType ChangeType
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			chunkType = ChangeAdded
		case diffmatchpatch.DiffDelete:
			chunkType = ChangeRemoved
		case diffmatchpatch.DiffEqual:
			continue
		}

		if strings.TrimSpace(d.Text) != "" {
			chunks = append(chunks, Chunk{Type: chunkType, Content: d.Text})
		}
	}
	return chunks
}
