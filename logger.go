package apiauth

import (
	"fmt"
	"regexp"
)

// DefaultRedaction replaces redacted field values in log output.
const DefaultRedaction = "***"

// DefaultFieldSeparator terminates a field=value pair in log output.
const DefaultFieldSeparator = ";"

// PIIFields lists the field names redacted by default: everything a log
// line around the auth flows could leak about an identity.
var PIIFields = []string{"email", "password", "session_id", "reset_token"}

// FilterFields obfuscates the value of each named field in message.
// A field is any "name=value<separator>" run; the value is replaced by
// redaction, the name and separator stay intact.
func FilterFields(fields []string, redaction, message, separator string) string {
	for _, field := range fields {
		re := regexp.MustCompile(regexp.QuoteMeta(field) + "=(.*?)" + regexp.QuoteMeta(separator))
		message = re.ReplaceAllString(message, field+"="+redaction+separator)
	}
	return message
}

// RedactingLogger decorates a Logger so formatted output never carries
// the values of configured fields. Redaction happens after formatting,
// so arguments interpolated into a field=value pair are covered too.
type RedactingLogger struct {
	inner     Logger
	fields    []string
	redaction string
	separator string
}

var _ Logger = (*RedactingLogger)(nil)

// NewRedactingLogger wraps inner, redacting the given fields. With no
// fields it defaults to PIIFields.
func NewRedactingLogger(inner Logger, fields ...string) *RedactingLogger {
	if len(fields) == 0 {
		fields = PIIFields
	}
	return &RedactingLogger{
		inner:     inner,
		fields:    fields,
		redaction: DefaultRedaction,
		separator: DefaultFieldSeparator,
	}
}

// WithRedaction overrides the replacement string.
func (l *RedactingLogger) WithRedaction(redaction string) *RedactingLogger {
	l.redaction = redaction
	return l
}

// WithSeparator overrides the field separator.
func (l *RedactingLogger) WithSeparator(separator string) *RedactingLogger {
	l.separator = separator
	return l
}

func (l *RedactingLogger) Debug(format string, args ...any) {
	l.inner.Debug("%s", l.filter(format, args...))
}

func (l *RedactingLogger) Info(format string, args ...any) {
	l.inner.Info("%s", l.filter(format, args...))
}

func (l *RedactingLogger) Error(format string, args ...any) {
	l.inner.Error("%s", l.filter(format, args...))
}

func (l *RedactingLogger) filter(format string, args ...any) string {
	return FilterFields(l.fields, l.redaction, fmt.Sprintf(format, args...), l.separator)
}
