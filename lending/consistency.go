package lending

import "context"

// ConsistencyLevel defines which database node a read may be served from.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database. It is the default,
	// so a caller that just checked out a book sees its own checkout.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica, if one is configured.
	// Listings for staff screens can usually tolerate slightly stale data.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store the consistency level.
const ConsistencyLevelKey contextKey = "lending.consistency_level"

// WithStrongConsistency returns a context that routes reads to the primary database.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that allows reads from a replica.
//
// Example usage:
//
//	ctx = lending.WithEventualConsistency(ctx)
//	checkouts, err := service.ListActiveCheckouts(ctx)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If none is set, it returns StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
