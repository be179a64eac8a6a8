package ingredient

import (
	"Pantry-API/entities"
	"Pantry-API/pkg/llm"
	"context"
)

type (
	ingredientPayload struct {
		IngredientID string `json:"ingredient_id"`
		Name         string `json:"name"`
	}

	ingredientEmbeddingRequest struct {
		Ingredients []ingredientPayload `json:"ingredients"`
	}

	ingredientEmbedding struct {
		IngredientID string    `json:"ingredient_id"`
		Embedding    []float32 `json:"embedding"`
	}

	ingredientEmbeddingResponse struct {
		Embeddings []ingredientEmbedding `json:"embeddings"`
	}

	IngredientLLM interface {
		// CreateEmbeddings sends the whole batch in one request and returns
		// vectors keyed by ingredient ID. Ingredients the service did not
		// embed are simply absent from the map.
		CreateEmbeddings(ctx context.Context, ingredients []*entities.Ingredient) (map[string][]float32, error)
	}

	ingredientLLM struct {
		client llm.Client
	}
)

func NewIngredientLLM(client llm.Client) IngredientLLM {
	return &ingredientLLM{client: client}
}

func (l *ingredientLLM) CreateEmbeddings(ctx context.Context, ingredients []*entities.Ingredient) (map[string][]float32, error) {
	req := ingredientEmbeddingRequest{Ingredients: make([]ingredientPayload, 0, len(ingredients))}
	for _, ingredient := range ingredients {
		req.Ingredients = append(req.Ingredients, ingredientPayload{
			IngredientID: ingredient.ID.String(),
			Name:         ingredient.Name,
		})
	}

	var resp ingredientEmbeddingResponse
	if err := l.client.Post(ctx, "/llm/embedding/ingredient", req, &resp); err != nil {
		return nil, err
	}

	vectors := make(map[string][]float32, len(resp.Embeddings))
	for _, e := range resp.Embeddings {
		vectors[e.IngredientID] = e.Embedding
	}

	return vectors, nil
}
