// Package log is the structured logging abstraction used by whyql.
//
// Components depend on the Logger interface rather than on a concrete
// library. A zerolog-backed implementation and a no-op implementation are
// provided:
//
//	logger := log.NewZerologAdapter(os.Stdout, log.FormatConsole, zerolog.InfoLevel)
//	logger.Info("response", log.Int("status", 200))
//
//	quiet := log.NewNoopLogger()
package log
