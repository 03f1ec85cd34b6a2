// Package index loads per-subject similarity-search handles over
// pre-embedded textbook chunks stored in Mongo. One subject key maps to
// one tenant database; a subject without chunks has no index.
package index

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/llm"
)

// Retriever answers nearest-k queries against one subject's index.
type Retriever interface {
	TopK(ctx context.Context, query string, k int) ([]ChunkModel, error)
}

type Provider struct {
	mongo    *mongo.Client
	embedder llm.Embedder
}

func NewProvider(mongoClient *mongo.Client, embedder llm.Embedder) *Provider {
	return &Provider{mongo: mongoClient, embedder: embedder}
}

// Load returns the subject's retriever, or NotFound when no chunks have
// ever been indexed for that subject. The handle is rebuilt on every
// call; retrieval freshness is never traded for caching.
func (p *Provider) Load(ctx context.Context, subject string) (Retriever, error) {
	chunkRepo := odm.CollectionOf[ChunkModel](p.mongo, subject)
	vectorRepo := odm.CollectionOf[ChunkAnnModel](p.mongo, subject)

	probe, err := async.Await(vectorRepo.Find(ctx, bson.M{}, nil, 1, 0))
	if err != nil {
		logger.Error("Failed to probe subject index", zap.String("subject", subject), zap.Error(err))
		return nil, apperr.New(apperr.UpstreamFailure, err)
	}
	if len(probe) == 0 {
		return nil, apperr.Newf(apperr.NotFound, "no index for subject %q", subject)
	}

	return &mongoRetriever{
		subject:    subject,
		chunkRepo:  chunkRepo,
		vectorRepo: vectorRepo,
		embedder:   p.embedder,
	}, nil
}

type mongoRetriever struct {
	subject    string
	chunkRepo  odm.OdmCollectionInterface[ChunkModel]
	vectorRepo odm.OdmCollectionInterface[ChunkAnnModel]
	embedder   llm.Embedder
}

// TopK embeds the query and returns the k nearest chunks in
// similarity-rank order, best match first.
func (r *mongoRetriever) TopK(ctx context.Context, query string, k int) ([]ChunkModel, error) {
	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		logger.Error("Failed to embed query", zap.String("subject", r.subject), zap.Error(err))
		return nil, apperr.New(apperr.UpstreamFailure, err)
	}

	hits, err := async.Await(r.vectorRepo.VectorSearch(ctx, embedding, odm.VectorSearchParams{
		IndexName:     VectorIndexName,
		Path:          VectorPath,
		K:             k,
		NumCandidates: k * 25,
	}))
	if err != nil {
		logger.Error("Vector search failed", zap.String("subject", r.subject), zap.Error(err))
		return nil, apperr.New(apperr.UpstreamFailure, err)
	}

	rankedIds := make([]string, 0, len(hits))
	for _, h := range hits {
		rankedIds = append(rankedIds, h.Doc.Id())
	}
	if len(rankedIds) == 0 {
		return nil, nil
	}

	chunks, err := async.Await(r.chunkRepo.Find(ctx, bson.M{"_id": bson.M{"$in": rankedIds}}, nil, 0, 0))
	if err != nil {
		logger.Error("Failed to fetch chunks", zap.String("subject", r.subject), zap.Error(err))
		return nil, apperr.New(apperr.UpstreamFailure, err)
	}

	// assemble in ranking order; Find gives no order guarantee
	chunkByID := make(map[string]ChunkModel, len(chunks))
	for _, c := range chunks {
		chunkByID[c.ChunkID] = c
	}

	ordered := make([]ChunkModel, 0, len(rankedIds))
	for _, id := range rankedIds {
		if c, ok := chunkByID[id]; ok {
			ordered = append(ordered, c)
		} else {
			logger.Info("chunk id missing after lookup", zap.String("id", id))
		}
	}
	return ordered, nil
}
