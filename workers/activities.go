package workers

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/Vasudevshetty/studysyncs/index"
	"github.com/Vasudevshetty/studysyncs/llm"
)

// Activities holds the ingestion steps run by the temporal worker. Each
// subject indexes into its own tenant database.
type Activities struct {
	mongo    *mongo.Client
	embedder llm.Embedder
}

func NewActivities(mongoClient *mongo.Client, embedder llm.Embedder) *Activities {
	return &Activities{mongo: mongoClient, embedder: embedder}
}

// EnsureSubjectIndexes creates the term and vector search indexes for a
// subject tenant. Safe to run repeatedly.
func (a *Activities) EnsureSubjectIndexes(ctx context.Context, subject string) error {
	if err := odm.EnsureIndexes[index.ChunkModel](ctx, a.mongo, subject); err != nil {
		return err
	}
	return odm.EnsureIndexes[index.ChunkAnnModel](ctx, a.mongo, subject)
}

// SaveChunks chunks the markdown document and persists the section
// chunks, returning their ids for the embedding step.
func (a *Activities) SaveChunks(ctx context.Context, subject, sourceURI string, markdown []byte) ([]string, error) {
	chunks, err := ChunkMarkdown(sourceURI, markdown)
	if err != nil {
		return nil, err
	}

	chunkRepo := odm.CollectionOf[index.ChunkModel](a.mongo, subject)

	ids := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if _, err := async.Await(chunkRepo.Save(ctx, chunk)); err != nil {
			logger.Error("Failed to save chunk", zap.String("chunkId", chunk.ChunkID), zap.Error(err))
			return nil, err
		}
		ids = append(ids, chunk.ChunkID)
	}

	logger.Info("Saved section chunks",
		zap.String("subject", subject), zap.Int("count", len(ids)))
	return ids, nil
}

// EmbedChunks embeds each saved chunk and stores its vector alongside,
// making the chunk visible to similarity search.
func (a *Activities) EmbedChunks(ctx context.Context, subject string, chunkIDs []string) error {
	chunkRepo := odm.CollectionOf[index.ChunkModel](a.mongo, subject)
	vectorRepo := odm.CollectionOf[index.ChunkAnnModel](a.mongo, subject)

	for _, id := range chunkIDs {
		chunk, err := async.Await(chunkRepo.FindOneByID(ctx, id))
		if err != nil {
			return err
		}

		embeddingText := chunk.Title + "\n" + chunk.SectionPath + "\n" + chunk.Body
		embedding, err := a.embedder.Embed(ctx, embeddingText)
		if err != nil {
			logger.Error("Failed to embed chunk", zap.String("chunkId", id), zap.Error(err))
			return err
		}

		ann := index.ChunkAnnModel{
			ChunkID:   chunk.ChunkID,
			Embedding: bson.NewVector(embedding),
		}
		if _, err := async.Await(vectorRepo.Save(ctx, ann)); err != nil {
			return err
		}
	}
	return nil
}
