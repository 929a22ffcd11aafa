package domain

import "fmt"

// Environment is the tenancy partition every entity is stamped with. It keeps
// automated test fixtures, development data, and production data apart inside
// the same physical collections. It is set once from process configuration and
// is never accepted from clients.
type Environment string

const (
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ParseEnvironment validates a configured environment name.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvTest, EnvDevelopment, EnvProduction:
		return Environment(s), nil
	}
	return "", fmt.Errorf("unknown environment %q", s)
}
