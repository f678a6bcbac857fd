package models

// ConfigurationError aborts the pipeline before the model is invoked:
// a bad anchor list or mismatched series lengths cannot be recovered
// locally.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigurationError builds a ConfigurationError with the given
// reason.
func NewConfigurationError(reason string) *ConfigurationError {
	return &ConfigurationError{Reason: reason}
}
