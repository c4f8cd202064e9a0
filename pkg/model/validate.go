package model

// validateConfiguration walks the configuration graph below root depth first.
// Every One/Many target that carries a configuration is pushed onto the
// ancestor path before descending into it; meeting a type that is already on
// the path is a cycle.
func validateConfiguration(root *Type) error {
	if root == nil {
		return nil
	}
	state := &walkState{inPath: make(map[*Type]struct{})}
	state.push(root)
	return state.walk(root.config)
}

type walkState struct {
	path   []*Type
	inPath map[*Type]struct{}
}

func (s *walkState) walk(cfg *Configuration) error {
	for _, key := range cfg.Keys() {
		rule, _ := cfg.Get(key)
		target := rule.target
		if target == nil || !target.Configured() {
			continue
		}
		if s.contains(target) {
			return s.cycleError(target)
		}
		s.push(target)
		err := s.walk(target.config)
		s.pop(target)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *walkState) push(t *Type) {
	s.path = append(s.path, t)
	s.inPath[t] = struct{}{}
}

func (s *walkState) pop(t *Type) {
	if len(s.path) == 0 {
		return
	}
	s.path = s.path[:len(s.path)-1]
	delete(s.inPath, t)
}

func (s *walkState) contains(t *Type) bool {
	_, ok := s.inPath[t]
	return ok
}

func (s *walkState) cycleError(t *Type) error {
	names := make([]string, 0, len(s.path)+1)
	for _, ancestor := range s.path {
		names = append(names, ancestor.Name())
	}
	names = append(names, t.Name())
	return &CircularConfigurationError{Type: t.Name(), Path: names}
}

// Validate reports a circular configuration reachable from t without
// registering it.
func (t *Type) Validate() error {
	return validateConfiguration(t)
}
