// Package environment carries the deployment environment (development,
// staging, production) through context.Context so request handlers can
// change behaviour without a global flag.
//
// The recipe service uses it to skip view-count increments while developing
// locally, and the logger picks the colored development handler from it.
//
//	r.Use(environment.Middleware(environment.Production))
//
//	if environment.IsDevelopment(ctx) {
//	    return
//	}
package environment
