package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"banana/jobboard/internal/config"
	"banana/jobboard/internal/services"
)

// Seeds the vector collection with hiring reference material (interview
// rubrics, evaluation guides) used as context for the fit assessment.
func main() {
	log.Println("🚀 Starting reference document ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	generator, err := services.NewGeminiGenerator(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	extractor := services.NewExtractorService()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	documents := []struct {
		Path string
		Name string
	}{
		{
			Path: "./reference_docs/interview_rubric.pdf",
			Name: "Interview Scoring Rubric",
		},
		{
			Path: "./reference_docs/hiring_guidelines.pdf",
			Name: "Hiring Guidelines",
		},
		{
			Path: "./reference_docs/screening_checklist.docx",
			Name: "Candidate Screening Checklist",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)
		log.Printf("   Path: %s", doc.Path)

		// Check if file exists
		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		// Extract text
		log.Printf("   📖 Extracting text...")
		text, err := extractor.ExtractText(doc.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d characters", len(text))

		// Chunk the text
		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		// Embed and store each chunk
		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := generator.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			docID := fmt.Sprintf("%s_chunk_%d", strings.ReplaceAll(strings.ToLower(doc.Name), " ", "_"), i)

			err = vectorStore.UpsertDocument(ctx, docID, services.DocTypeRubric, chunk, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", doc.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
