package core

// Logger is the minimal leveled logging contract shared by all services.
// Implementations accept trailing args of the form:
// error, map[string]interface{}, account.Session
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
