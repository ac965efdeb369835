package logging

import "time"

// Config controls the behavior of the logging router and the sinks
// attached to it.
type Config struct {
	MinSeverity   Severity       `json:"minSeverity"`
	Sinks         []string       `json:"sinks"`
	BufferSize    int            `json:"bufferSize"`
	DefaultFields map[string]any `json:"defaultFields,omitempty"`
	JSON          JSONConfig     `json:"json"`
	Console       ConsoleConfig  `json:"console"`
}

type JSONConfig struct {
	Path          string        `json:"path"`
	FlushInterval time.Duration `json:"flushInterval"`
}

type ConsoleConfig struct {
	Enabled bool `json:"enabled"`
}

func DefaultConfig() Config {
	return Config{
		MinSeverity: SeverityInfo,
		Sinks:       []string{"console"},
		BufferSize:  256,
		JSON: JSONConfig{
			Path:          "",
			FlushInterval: 2 * time.Second,
		},
		Console: ConsoleConfig{Enabled: true},
	}
}

func (c Config) HasSink(name string) bool {
	for _, sink := range c.Sinks {
		if sink == name {
			return true
		}
	}
	return false
}

func (c Config) CloneFields() map[string]any {
	if len(c.DefaultFields) == 0 {
		return nil
	}
	copied := make(map[string]any, len(c.DefaultFields))
	for k, v := range c.DefaultFields {
		copied[k] = v
	}
	return copied
}
