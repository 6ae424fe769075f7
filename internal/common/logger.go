package common

// Logger es el colaborador de observabilidad que reciben los componentes del core.
// *log.Logger lo implementa.
type Logger interface {
	Printf(format string, v ...any)
}

// NopLogger descarta todo.
type NopLogger struct{}

func (NopLogger) Printf(string, ...any) {}
