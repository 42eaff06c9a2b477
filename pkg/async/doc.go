// Package async runs independent lookups concurrently and collects their
// results through typed futures.
//
//	recipes := async.Go(ctx, func(ctx context.Context) ([]recipe.Summary, error) { ... })
//	count := async.Go(ctx, func(ctx context.Context) (int, error) { ... })
//	rs, err := recipes.Await(ctx)
package async
