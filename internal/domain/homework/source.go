// internal/domain/homework/source.go
package homework

import "context"

// Source fetches the raw submission report updated since cursor (epoch seconds).
type Source interface {
	FetchSubmissions(ctx context.Context, cursor int64) (any, error)
}
