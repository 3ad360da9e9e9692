// Package log provides a small leveled logging interface based on
// [log/slog].
//
// A logger is configured at creation time with functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level
// are discarded, and the zero value Logger discards everything.
//
// Each level has a context-aware and a context-unaware method. The
// context-unaware variants call their counterparts through
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. The text format is colorized unless pretty printing is
// disabled with [WithPretty].
package log
