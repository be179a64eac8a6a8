package ingredientlog

import (
	"Pantry-API/entities"
	"Pantry-API/pkg/llm"
	"context"
	"time"
)

type (
	foodLogPayload struct {
		IngredientLogID string `json:"ingredient_log_id"`
		MemberID        string `json:"member_id"`
		Food            string `json:"food"`
		Date            string `json:"date"`
	}

	foodLogEmbeddingRequest struct {
		Logs []foodLogPayload `json:"logs"`
	}

	foodLogEmbedding struct {
		IngredientLogID string    `json:"ingredient_log_id"`
		Embedding       []float32 `json:"embedding"`
	}

	foodLogEmbeddingResponse struct {
		Embeddings []foodLogEmbedding `json:"embeddings"`
	}

	IngredientLogLLM interface {
		// CreateEmbeddings returns vectors keyed by log ID. Logs absent from
		// the response simply keep their nil vector.
		CreateEmbeddings(ctx context.Context, logs []*entities.IngredientLog) (map[string][]float32, error)
	}

	ingredientLogLLM struct {
		client llm.Client
	}
)

func NewIngredientLogLLM(client llm.Client) IngredientLogLLM {
	return &ingredientLogLLM{client: client}
}

func (l *ingredientLogLLM) CreateEmbeddings(ctx context.Context, logs []*entities.IngredientLog) (map[string][]float32, error) {
	req := foodLogEmbeddingRequest{Logs: make([]foodLogPayload, 0, len(logs))}
	for _, log := range logs {
		req.Logs = append(req.Logs, foodLogPayload{
			IngredientLogID: log.ID.String(),
			MemberID:        log.MemberID.String(),
			Food:            log.IngredientName,
			Date:            log.CreatedAt.Format(time.RFC3339),
		})
	}

	var resp foodLogEmbeddingResponse
	if err := l.client.Post(ctx, "/llm/embedding/food-log", req, &resp); err != nil {
		return nil, err
	}

	vectors := make(map[string][]float32, len(resp.Embeddings))
	for _, e := range resp.Embeddings {
		vectors[e.IngredientLogID] = e.Embedding
	}

	return vectors, nil
}
