package ports

// Logger é o log estruturado usado pelos serviços e handlers.
// Os args seguem o formato chave/valor do slog.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}
