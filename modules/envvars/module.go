package envvars

import (
	"os"
	"strings"

	"github.com/logos-core/lm/internal/registry"
	"github.com/logos-core/lm/modsdk"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Service exposes read-only access to the process environment.
type Service struct {
	modsdk.Base
}

// Snapshot returns a copy of the current process environment.
func (s *Service) Snapshot() map[string]string {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return envMap
}

// Lookup reads a single environment variable, distinguishing unset from empty.
func (s *Service) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Expand substitutes $var and ${var} references in value from the environment.
func (s *Service) Expand(value string) string {
	return os.ExpandEnv(value)
}

// OnEnvChanged is notified when the host observes an environment change.
func (s *Service) OnEnvChanged(name string) {
	// The process environment is read fresh on every call, so there is no
	// cached state to invalidate.
	_ = name
}

// Register registers the service instance with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Entry{
		Name:     "env_vars",
		Instance: &Service{},
	})
}
