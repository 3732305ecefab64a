package answers

// Meta is the metadata block of the answer file: which catalog produced
// the answers, the chosen language and mode, and the progress bookkeeping
// (active stage plus the ordered undo stack of asked ids).
type Meta struct {
	Catalog  string   `yaml:"catalog"`
	Version  int      `yaml:"version"`
	Language string   `yaml:"language,omitempty"`
	Mode     string   `yaml:"mode,omitempty"`
	Stage    string   `yaml:"stage,omitempty"`
	Asked    []string `yaml:"asked,omitempty"`
}

// State is the full persisted answer store. The file has exactly two
// top-level keys: meta and answers.
type State struct {
	Meta    Meta             `yaml:"meta"`
	Answers map[string]Value `yaml:"answers"`
}

// NewState returns an empty state bound to a catalog identity.
func NewState(catalogID string, version int) *State {
	return &State{
		Meta:    Meta{Catalog: catalogID, Version: version},
		Answers: make(map[string]Value),
	}
}

// Get returns the answer for a question id.
func (s *State) Get(id string) (Value, bool) {
	v, ok := s.Answers[id]
	return v, ok
}

// Set records an answer, creating the map if the state was decoded from
// an empty document.
func (s *State) Set(id string, v Value) {
	if s.Answers == nil {
		s.Answers = make(map[string]Value)
	}
	s.Answers[id] = v
}

// Delete removes an answer record.
func (s *State) Delete(id string) {
	delete(s.Answers, id)
}

// Asked reports whether the id is on the asked stack.
func (s *State) Asked(id string) bool {
	for _, asked := range s.Meta.Asked {
		if asked == id {
			return true
		}
	}
	return false
}

// PushAsked appends an id to the asked stack.
func (s *State) PushAsked(id string) {
	s.Meta.Asked = append(s.Meta.Asked, id)
}

// PopAsked removes and returns the most recently asked id.
// The second return is false when the stack is empty.
func (s *State) PopAsked() (string, bool) {
	n := len(s.Meta.Asked)
	if n == 0 {
		return "", false
	}
	id := s.Meta.Asked[n-1]
	s.Meta.Asked = s.Meta.Asked[:n-1]
	return id, true
}

// Reset clears all answers and progress, keeping the catalog identity,
// language, and mode.
func (s *State) Reset() {
	s.Answers = make(map[string]Value)
	s.Meta.Asked = nil
	s.Meta.Stage = ""
}

// Clone returns a deep copy, used to snapshot state before mutations
// that must roll back on a failed save.
func (s *State) Clone() *State {
	clone := &State{Meta: s.Meta}
	clone.Meta.Asked = append([]string(nil), s.Meta.Asked...)
	clone.Answers = make(map[string]Value, len(s.Answers))
	for id, v := range s.Answers {
		copied := v
		copied.List = append([]string(nil), v.List...)
		clone.Answers[id] = copied
	}
	return clone
}
