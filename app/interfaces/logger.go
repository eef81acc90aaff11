package interfaces

// Logger is the structured logging surface of the renewal pipeline. Fields
// added with WithField and WithError accumulate on the returned logger and
// appear on every subsequent message.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithError(err error) Logger
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
}
