package health

import "context"

// DBPinger checks case study store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker checks a model provider (embedding or chat) availability.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}
