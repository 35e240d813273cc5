package health

import (
	"context"
	"sort"
	"time"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Service runs dependency checks for the health endpoint.
type Service struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewService constructs a health service. Nil checks are ignored.
func NewService(checks map[string]Check) *Service {
	filtered := make(map[string]Check, len(checks))
	for name, check := range checks {
		if check != nil {
			filtered[name] = check
		}
	}
	return &Service{checks: filtered, timeout: 2 * time.Second}
}

// Status runs every check and reports per-dependency results.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	payload := map[string]any{"ok": true}
	if s == nil || len(s.checks) == 0 {
		return payload, true
	}

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	ok := true
	deps := make(map[string]string, len(names))
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.checks[name](checkCtx)
		cancel()
		if err != nil {
			ok = false
			deps[name] = err.Error()
			continue
		}
		deps[name] = "ok"
	}
	payload["ok"] = ok
	payload["dependencies"] = deps
	return payload, ok
}
