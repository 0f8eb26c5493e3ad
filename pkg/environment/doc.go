// Package environment provides simple helpers to propagate the current
// application environment (development, staging, production) through
// context.Context and structured logs.
//
// It defines the typed string Environment with predefined constants
// Development, Staging and Production. Free-form values such as the contents
// of an environment variable are normalized with Parse. Values are attached
// to a context using WithContext, extracted with FromContext and queried with
// the convenience predicates IsDevelopment, IsStaging and IsProduction.
//
// For structured logging the package provides LoggerExtractor which returns a
// slog.Attr containing the environment value so it can be injected into slog
// based loggers.
//
// # Usage
//
//	env := environment.Parse(os.Getenv("LOCKKIT_ENV"))
//	ctx := environment.WithContext(context.Background(), env)
//
//	if environment.IsProduction(ctx) {
//	    // production-specific behaviour
//	}
//
// All helpers are allocation-free and never return errors. Missing values
// result in the zero value ("").
package environment
