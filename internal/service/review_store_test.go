package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
)

func TestReviewStore_SubmitPrependsAndCapturesSession(t *testing.T) {
	ctx := context.Background()
	fx := newStoreFixture(t)
	reviews := fx.stores.Reviews("browser-1")
	session := &domain.Session{ID: "1700000000000", Name: "Dina", Email: "dina@x.com"}

	first, err := reviews.Submit(ctx, "2", 4, "  Sunrise luar biasa  ", session)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if first.UserID != session.ID || first.UserName != session.Name {
		t.Fatalf("expected session identity captured, got %+v", first)
	}
	if first.Comment != "Sunrise luar biasa" {
		t.Fatalf("expected trimmed comment, got %q", first.Comment)
	}
	if first.Date != fx.now.Format(time.RFC3339Nano) {
		t.Fatalf("unexpected date %s", first.Date)
	}

	second, err := reviews.Submit(ctx, "2", 5, "Kembali lagi", session)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	list, err := reviews.List(ctx, "2")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct review ids")
	}

	summary, err := reviews.Summary(ctx, "2")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.TotalReviews != 2 || summary.AverageRating != 4.5 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	dest, _ := fx.stores.Catalog().Get(2)
	if dest.Reviews != 3120 || dest.Rating != 4.9 {
		t.Fatalf("catalog aggregates must not change, got %+v", dest)
	}
}

func TestReviewStore_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	fx := newStoreFixture(t)
	reviews := fx.stores.Reviews("browser-1")
	session := &domain.Session{ID: "1", Name: "Dina", Email: "dina@x.com"}

	cases := []struct {
		name    string
		rating  int
		comment string
		session *domain.Session
		dest    string
		want    error
	}{
		{name: "whitespace comment", rating: 5, comment: "   ", session: session, dest: "1", want: ErrReviewValidation},
		{name: "unset rating", rating: 0, comment: "ok", session: session, dest: "1", want: ErrReviewValidation},
		{name: "rating too high", rating: 6, comment: "ok", session: session, dest: "1", want: ErrReviewValidation},
		{name: "no session", rating: 5, comment: "ok", session: nil, dest: "1", want: ErrNotAuthenticated},
		{name: "unknown destination", rating: 5, comment: "ok", session: session, dest: "42", want: ErrDestinationNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := reviews.Submit(ctx, tc.dest, tc.rating, tc.comment, tc.session); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	list, err := reviews.List(ctx, "1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected rejected submissions to leave the list empty, got %+v", list)
	}
	if len(fx.events.types()) != 0 {
		t.Fatalf("expected no events, got %v", fx.events.types())
	}
}

func TestReviewStore_Summaries(t *testing.T) {
	ctx := context.Background()
	fx := newStoreFixture(t)
	reviews := fx.stores.Reviews("browser-1")
	session := &domain.Session{ID: "1", Name: "Dina"}

	if _, err := reviews.Submit(ctx, "1", 3, "ramai", session); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if err := fx.kv.Set(ctx, "client:browser-1:reviews_3", []byte("[broken")); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := reviews.Summaries(ctx, []string{"1", "3", "4"})
	if err != nil {
		t.Fatalf("Summaries returned error: %v", err)
	}
	if got["1"].TotalReviews != 1 || got["1"].AverageRating != 3 {
		t.Fatalf("unexpected summary for 1: %+v", got["1"])
	}
	if got["3"].TotalReviews != 0 || got["4"].TotalReviews != 0 {
		t.Fatalf("expected empty summaries for 3 and 4, got %+v %+v", got["3"], got["4"])
	}
}
