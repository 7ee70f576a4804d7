package logger

// Logger is the structured logging interface used across the application.
// Every entry carries the emitting component name plus arbitrary fields.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}
