package services

import "golang.org/x/sync/singleflight"

// do runs fn once per key among concurrent callers; every caller gets the
// same result.
func do[T any](g *singleflight.Group, key string, fn func() (T, error)) (T, error) {
	v, err, _ := g.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
