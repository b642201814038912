// Package memory holds the long-term semantic recall index. Entries are
// append-only; a read may race a concurrent write and see the index without
// the newest entry, which is acceptable for recall.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Embedder turns text into a vector. The Gemini client implements it.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Entry is one remembered utterance tagged with its classified incident kind.
type Entry struct {
	Text      string    `bson:"text" json:"text"`
	Kind      string    `bson:"kind" json:"kind"`
	Vector    []float32 `bson:"vector" json:"vector"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// RecallIndex is the search contract the orchestrator consumes. Scores are
// normalized to [0,1] where 1 is identical.
type RecallIndex interface {
	Add(ctx context.Context, text, kind string) error
	Search(ctx context.Context, query string, topK int) ([]Entry, []float64, error)
}

// Index is an in-process vector index optionally backed by a Mongo
// collection for durability across restarts.
type Index struct {
	embed Embedder
	coll  *mongo.Collection

	mu      sync.RWMutex
	entries []Entry
}

// NewIndex builds an index over the given embedder. coll may be nil for a
// purely in-memory index.
func NewIndex(embed Embedder, coll *mongo.Collection) *Index {
	return &Index{embed: embed, coll: coll}
}

// Load restores persisted entries into the in-process index.
func (x *Index) Load(ctx context.Context) error {
	if x.coll == nil {
		return nil
	}
	cursor, err := x.coll.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return err
	}

	x.mu.Lock()
	x.entries = entries
	x.mu.Unlock()
	return nil
}

// Add embeds the text and appends the entry. Persistence to Mongo is
// best-effort; the in-process index is the source of truth for this run.
func (x *Index) Add(ctx context.Context, text, kind string) error {
	vec, err := x.embed.EmbedText(ctx, text)
	if err != nil {
		return err
	}
	entry := Entry{Text: text, Kind: kind, Vector: vec, CreatedAt: time.Now().UTC()}

	x.mu.Lock()
	x.entries = append(x.entries, entry)
	x.mu.Unlock()

	if x.coll != nil {
		if _, err := x.coll.InsertOne(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// Search returns up to topK entries ranked by similarity to the query.
func (x *Index) Search(ctx context.Context, query string, topK int) ([]Entry, []float64, error) {
	x.mu.RLock()
	snapshot := make([]Entry, len(x.entries))
	copy(snapshot, x.entries)
	x.mu.RUnlock()

	if len(snapshot) == 0 {
		return nil, nil, nil
	}

	qvec, err := x.embed.EmbedText(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	type scored struct {
		entry Entry
		score float64
	}
	ranked := make([]scored, 0, len(snapshot))
	for _, e := range snapshot {
		ranked = append(ranked, scored{entry: e, score: similarity(qvec, e.Vector)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if topK <= 0 || topK > len(ranked) {
		topK = len(ranked)
	}
	entries := make([]Entry, 0, topK)
	scores := make([]float64, 0, topK)
	for _, r := range ranked[:topK] {
		entries = append(entries, r.entry)
		scores = append(scores, r.score)
	}
	return entries, scores, nil
}

// similarity maps cosine similarity from [-1,1] onto [0,1].
func similarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return (cos + 1) / 2
}
