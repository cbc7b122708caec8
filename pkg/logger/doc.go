// Package logger builds the gateway's structured slog.Logger.
//
// New applies functional options for level, format, output and static
// attributes, then wraps the handler in a decorator that pulls request-scoped
// values (such as the request id) out of the context on every record.
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Credentials never reach the output: attributes whose key names a secret
// (password, access_token, cookie and similar) are replaced with "[REDACTED]"
// by the handler itself, regardless of where they were added.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "onboarding-gateway"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "auto-login failed",
//	    logger.Component("auth"),
//	    logger.Reason("corrupt_credentials"),
//	)
package logger
