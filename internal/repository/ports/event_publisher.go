package ports

import (
	"context"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
