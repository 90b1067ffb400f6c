package ragstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
)

const (
	payloadText   = "text"
	payloadSource = "source"
)

// Store is a thin retrieval layer over a single Qdrant collection. Ingest is
// idempotent per source id: the point id is derived from the id, so
// re-ingesting the same document overwrites it.
type Store struct {
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	embed       Embedder
	collection  string
	dimension   uint64
}

func NewStore(conn *grpc.ClientConn, embed Embedder, collection string, dimension uint64) *Store {
	return &Store{
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		embed:       embed,
		collection:  collection,
		dimension:   dimension,
	}
}

// EnsureCollection creates the collection with cosine distance if it does
// not exist yet.
func (s *Store) EnsureCollection(ctx context.Context) error {
	existing, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	for _, col := range existing.GetCollections() {
		if col.GetName() == s.collection {
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     s.dimension,
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", s.collection, err)
	}
	return nil
}

// Ingest embeds text and upserts it under an id derived from sourceID.
func (s *Store) Ingest(ctx context.Context, text, sourceID string) (string, error) {
	vector, err := s.embed.Embed(ctx, text)
	if err != nil {
		return "", fmt.Errorf("embedding document %s: %w", sourceID, err)
	}

	id := DocumentID(sourceID)
	wait := true
	_, err = s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: []*qdrantclient.PointStruct{
			{
				Id: &qdrantclient.PointId{
					PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: id},
				},
				Vectors: &qdrantclient.Vectors{
					VectorsOptions: &qdrantclient.Vectors_Vector{
						Vector: &qdrantclient.Vector{Data: vector},
					},
				},
				Payload: map[string]*qdrantclient.Value{
					payloadText:   {Kind: &qdrantclient.Value_StringValue{StringValue: text}},
					payloadSource: {Kind: &qdrantclient.Value_StringValue{StringValue: sourceID}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("upserting document %s: %w", sourceID, err)
	}

	return id, nil
}

// QueryTopK returns the text payloads of the k most similar documents.
func (s *Store) QueryTopK(ctx context.Context, text string, k int) ([]string, error) {
	vector, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	resp, err := s.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching collection %s: %w", s.collection, err)
	}

	passages := make([]string, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		if passage := point.GetPayload()[payloadText].GetStringValue(); passage != "" {
			passages = append(passages, passage)
		}
	}

	return passages, nil
}

// DocumentID derives a stable UUID for a source id, so the same document
// always maps to the same point.
func DocumentID(sourceID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(sourceID)).String()
}
