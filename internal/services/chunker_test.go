package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunker := NewTextChunker()
	chunks := chunker.ChunkText("A short paragraph.", 1000, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short paragraph.", chunks[0])
}

func TestChunkText_SplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()
	paragraph := strings.TrimSpace(strings.Repeat("word ", 50))
	text := paragraph + "\n\n" + paragraph + "\n\n" + paragraph
	chunks := chunker.ChunkText(text, 300, 0)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 300)
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	chunker := NewTextChunker()
	assert.Empty(t, chunker.ChunkText("", 1000, 100))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 100))
}

func TestChunkText_OverlapCarriesTail(t *testing.T) {
	chunker := NewTextChunker()
	text := strings.Repeat("alpha beta gamma. ", 60)
	chunks := chunker.ChunkText(text, 200, 50)
	require.Greater(t, len(chunks), 1)

	// The second chunk starts with the tail of the first.
	tail := lastNChars(chunks[0], 50)
	assert.True(t, strings.HasPrefix(chunks[1], tail))
}

func TestLastNChars(t *testing.T) {
	assert.Equal(t, "", lastNChars("anything", 0))
	assert.Equal(t, "abc", lastNChars("abc", 10))
	assert.Equal(t, "def", lastNChars("abcdef", 3))
}
