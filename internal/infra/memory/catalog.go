package memory

import (
	"context"

	"counting-sheep-service/internal/domain"
	"counting-sheep-service/internal/quizdata"
)

// Catalog serves quiz metadata from a static map (useful for tests and
// database-less runs).
type Catalog struct {
	infos map[string]domain.QuizInfo
}

func NewCatalog(infos map[string]domain.QuizInfo) *Catalog {
	return &Catalog{infos: infos}
}

// NewStaticCatalog derives metadata from the compiled-in quiz definitions,
// keyed by storage slug.
func NewStaticCatalog() *Catalog {
	infos := make(map[string]domain.QuizInfo)
	for _, slug := range quizdata.Slugs() {
		quiz, _ := quizdata.BySlug(slug)
		storage := quizdata.StorageSlug(slug)
		infos[storage] = domain.QuizInfo{
			ID:       "static-" + storage,
			Slug:     storage,
			Title:    quiz.Title,
			MaxScore: quizdata.MaxScore(quiz),
		}
	}
	return &Catalog{infos: infos}
}

func (c *Catalog) QuizInfo(_ context.Context, slug string) (domain.QuizInfo, error) {
	if info, ok := c.infos[slug]; ok {
		return info, nil
	}
	return domain.QuizInfo{}, domain.ErrQuizNotFound
}
