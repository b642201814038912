package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder maps known strings to fixed vectors.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func TestIndexSearchRanksBySimilarity(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{
		"fire at oak street": {1, 0, 0},
		"my friend fell":     {0, 1, 0},
		"fire query":         {1, 0.1, 0},
	}}
	idx := NewIndex(emb, nil)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "fire at oak street", "fire"))
	require.NoError(t, idx.Add(ctx, "my friend fell", "medical"))

	entries, scores, err := idx.Search(ctx, "fire query", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "fire at oak street", entries[0].Text)
	assert.Equal(t, "fire", entries[0].Kind)
	assert.Greater(t, scores[0], scores[1])
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestIndexIdenticalVectorScoresOne(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{
		"same": {0.5, 0.5, 0},
	}}
	idx := NewIndex(emb, nil)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "same", "fire"))
	_, scores, err := idx.Search(ctx, "same", 1)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
}

func TestIndexEmptySearch(t *testing.T) {
	idx := NewIndex(&stubEmbedder{}, nil)
	entries, scores, err := idx.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Nil(t, entries)
	assert.Nil(t, scores)
}

func TestIndexAddPropagatesEmbedFailure(t *testing.T) {
	idx := NewIndex(&stubEmbedder{err: errors.New("embedder down")}, nil)
	err := idx.Add(context.Background(), "text", "fire")
	assert.Error(t, err)

	// A failed add leaves nothing behind.
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	assert.Empty(t, idx.entries)
}

func TestIndexConcurrentAddAndSearch(t *testing.T) {
	idx := NewIndex(&stubEmbedder{vectors: map[string][]float32{}}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = idx.Add(ctx, "entry", "fire")
		}()
		go func() {
			defer wg.Done()
			_, _, _ = idx.Search(ctx, "entry", 3)
		}()
	}
	wg.Wait()

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	assert.Len(t, idx.entries, 20)
}
