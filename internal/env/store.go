package env

// Store is the per-instance key/value environment. Each job instance owns
// exactly one store, seeded from the workflow's environment baseline plus
// any injected secrets; writes by a step are visible to every subsequent
// step of the same instance and to no other instance. No locking is needed
// because a store is only ever touched by its instance's own executor.
type Store struct {
	values  map[string]string
	secrets map[string]bool
}

// NewStore creates a store seeded from the baseline and secret mappings.
// Secret keys are remembered so reporting layers can redact their values.
func NewStore(baseline, secrets map[string]string) *Store {
	s := &Store{
		values:  make(map[string]string, len(baseline)+len(secrets)),
		secrets: make(map[string]bool, len(secrets)),
	}
	for k, v := range baseline {
		s.values[k] = v
	}
	for k, v := range secrets {
		s.values[k] = v
		s.secrets[k] = true
	}
	return s
}

// Set assigns a value, overwriting any earlier write of the same key
func (s *Store) Set(key, value string) {
	s.values[key] = value
}

// Get returns the value for a key. An absent key resolves to the empty
// string; conditional append-to-env patterns rely on absence meaning
// default rather than failure.
func (s *Store) Get(key string) string {
	return s.values[key]
}

// Lookup returns the value and whether the key is present
func (s *Store) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// IsSecret reports whether a key was injected as a secret
func (s *Store) IsSecret(key string) bool {
	return s.secrets[key]
}

// Snapshot returns a copy of the current state for a command invocation.
// The copy keeps later store writes from leaking into an already-dispatched
// command's environment.
func (s *Store) Snapshot() map[string]string {
	snap := make(map[string]string, len(s.values))
	for k, v := range s.values {
		snap[k] = v
	}
	return snap
}
