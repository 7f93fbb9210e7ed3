// Package logger builds the structured loggers used across the
// toolkit. Every logger it produces masks credential-bearing
// attributes (consumer secrets, tokens, verifiers) before any sink
// sees them, because flows in this module routinely log request
// metadata next to material that must stay out of log storage.
//
// New returns a stdout JSON logger; NewWithSentry adds a Sentry sink
// for warnings and errors; NewNope discards everything and is the
// default inside library packages.
//
//	log := logger.New()
//	log.Info("token exchanged",
//		slog.String("service", "twitter"),
//		slog.String("oauth_token_secret", secret)) // logged as [redacted]
package logger
