package list_venues

import (
	"context"

	"github.com/jhcsc-org/jhcsc-venue/internal/service/venues"
)

type VenueService interface {
	List(ctx context.Context, req *venues.ListRequest) (*venues.VenueListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
