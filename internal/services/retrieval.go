package services

import (
	"context"
	"fmt"
	"log"

	"banana/jobboard/internal/models"
)

// RetrievalService glues embeddings and the vector store. It indexes job
// postings as they are created and fetches reference context for the
// fit-assessment prompt. Every method is safe to fail: callers degrade to an
// empty context.
type RetrievalService interface {
	IndexJobPosting(ctx context.Context, job *models.JobPosting) error
	FetchContext(ctx context.Context, queryText string) (string, error)
}

type retrievalService struct {
	generator GeneratorService
	store     VectorStore
	chunker   TextChunker
}

func NewRetrievalService(generator GeneratorService, store VectorStore) RetrievalService {
	return &retrievalService{
		generator: generator,
		store:     store,
		chunker:   NewTextChunker(),
	}
}

// IndexJobPosting implements RetrievalService. Long descriptions are chunked
// so each point stays within embedding limits.
func (r *retrievalService) IndexJobPosting(ctx context.Context, job *models.JobPosting) error {
	text := fmt.Sprintf("%s\n\n%s", job.Title, job.Description)

	for _, chunk := range r.chunker.ChunkText(text, 1000, 100) {
		embedding, err := r.generator.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed job posting: %w", err)
		}

		if err := r.store.UpsertDocument(ctx, job.ID.String(), DocTypeJobPosting, chunk, embedding); err != nil {
			return fmt.Errorf("failed to index job posting: %w", err)
		}
	}

	return nil
}

// FetchContext implements RetrievalService.
func (r *retrievalService) FetchContext(ctx context.Context, queryText string) (string, error) {
	embedding, err := r.generator.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	var allResults []SearchResult
	for _, docType := range []string{DocTypeJobPosting, DocTypeRubric} {
		results, err := r.store.SearchSimilar(ctx, embedding, docType, 3)
		if err != nil {
			log.Printf("⚠️  Failed to search for %s: %v\n", docType, err)
			continue
		}
		allResults = append(allResults, results...)
	}

	return FormatReferenceContext(allResults), nil
}
