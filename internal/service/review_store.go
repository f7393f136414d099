package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/localstore"
)

const (
	minReviewRating = 1
	maxReviewRating = 5
)

// ReviewStore holds the reviews a client profile has seen submitted, one
// list per destination, newest first. Catalog ratings are never touched.
type ReviewStore struct {
	client *localstore.Client
	opts   StoreOptions
}

func (s *ReviewStore) List(ctx context.Context, destinationID string) ([]domain.Review, error) {
	id := strings.TrimSpace(destinationID)
	if _, ok := s.opts.Catalog.Lookup(id); !ok {
		return nil, ErrDestinationNotFound
	}
	return s.load(ctx, id)
}

func (s *ReviewStore) Submit(ctx context.Context, destinationID string, rating int, comment string, session *domain.Session) (*domain.Review, error) {
	if session == nil {
		return nil, ErrNotAuthenticated
	}
	id := strings.TrimSpace(destinationID)
	if _, ok := s.opts.Catalog.Lookup(id); !ok {
		return nil, ErrDestinationNotFound
	}
	comment = strings.TrimSpace(comment)
	var problems []string
	if rating < minReviewRating || rating > maxReviewRating {
		problems = append(problems, fmt.Sprintf("rating must be between %d and %d", minReviewRating, maxReviewRating))
	}
	if comment == "" {
		problems = append(problems, "comment is required")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrReviewValidation, strings.Join(problems, "; "))
	}

	review := domain.Review{
		ID:       s.opts.IDs.Next(),
		UserID:   session.ID,
		UserName: session.Name,
		Rating:   rating,
		Comment:  comment,
		Date:     s.opts.Now().UTC().Format(time.RFC3339Nano),
	}

	s.client.Lock()
	reviews, err := s.load(ctx, id)
	if err != nil {
		s.client.Unlock()
		return nil, err
	}
	reviews = append([]domain.Review{review}, reviews...)
	err = s.client.WriteJSON(ctx, localstore.ReviewsKey(id), reviews)
	s.client.Unlock()
	if err != nil {
		return nil, err
	}

	publish(ctx, s.opts, s.client.ID(), domain.EventReviewSubmitted, map[string]any{
		"destination_id": id,
		"review_id":      review.ID,
		"rating":         review.Rating,
		"user_id":        review.UserID,
	})
	return &review, nil
}

// Summary aggregates only the reviews stored for this client.
func (s *ReviewStore) Summary(ctx context.Context, destinationID string) (domain.ReviewSummary, error) {
	reviews, err := s.List(ctx, destinationID)
	if err != nil {
		return domain.ReviewSummary{}, err
	}
	return summarize(strings.TrimSpace(destinationID), reviews), nil
}

// Summaries aggregates several destinations in one backend read.
func (s *ReviewStore) Summaries(ctx context.Context, destinationIDs []string) (map[string]domain.ReviewSummary, error) {
	keys := make([]string, len(destinationIDs))
	for i, id := range destinationIDs {
		keys[i] = localstore.ReviewsKey(id)
	}
	stored, err := localstore.ReadMany[[]domain.Review](ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.ReviewSummary, len(destinationIDs))
	for i, id := range destinationIDs {
		out[id] = summarize(id, stored[keys[i]])
	}
	return out, nil
}

func (s *ReviewStore) load(ctx context.Context, destinationID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if _, err := s.client.ReadJSON(ctx, localstore.ReviewsKey(destinationID), &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func summarize(destinationID string, reviews []domain.Review) domain.ReviewSummary {
	summary := domain.ReviewSummary{DestinationID: destinationID, TotalReviews: len(reviews)}
	if len(reviews) == 0 {
		return summary
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	summary.AverageRating = roundTenth(float64(total) / float64(len(reviews)))
	return summary
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
