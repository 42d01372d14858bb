package catalog

import "fmt"

// ConfigError reports a catalog that violates a load-time invariant.
// It is fatal: a process must not serve requests with a misconfigured catalog.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	msg := "catalog config error"
	if e.Field != "" {
		msg = fmt.Sprintf("%s in %s", msg, e.Field)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
