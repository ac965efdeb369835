// Package observability holds opt-in diagnostics toggles wired through
// the server at startup.
package observability

// Config captures observability switches read from the environment.
type Config struct {
	// EnablePprofTrace mounts net/http/pprof handlers on the main mux.
	EnablePprofTrace bool
}
