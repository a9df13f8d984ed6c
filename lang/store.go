package lang

// LocalPrefix marks run-scoped context variables. They can be referenced
// like any other variable but are never written to the output.
const LocalPrefix = "LOCAL_"

// Context variables injected into every document.
const (
	VarBase       = LocalPrefix + "BASE"
	VarTmp        = LocalPrefix + "TMP"
	VarOutputDir  = LocalPrefix + "OUTPUT_DIR"
	VarOutputName = LocalPrefix + "OUTPUT_NAME"
	VarGenerated  = LocalPrefix + "GENERATED"
)

// History is one recorded value of a variable and where it was recorded.
type History struct {
	Value Value `json:"value" yaml:"value"`
	Pos   Pos   `json:"pos"   yaml:"pos"`
}

// Entry is an element of the resolved configuration: a [*CommentEntry] or a
// [*Variable].
type Entry interface {
	entry()
}

// CommentEntry is a comment emitted in evaluation order.
type CommentEntry struct {
	Text string `json:"comment" yaml:"comment"`
}

// Variable is a named configuration value with every value it was ever
// assigned, oldest first. The last element of History is authoritative.
type Variable struct {
	Name    string    `json:"name"    yaml:"name"`
	History []History `json:"history" yaml:"history"`
}

func (*CommentEntry) entry() {}
func (*Variable) entry()     {}

// Last returns the authoritative value of the variable.
func (v *Variable) Last() History { return v.History[len(v.History)-1] }

// Store is the ordered resolved configuration of one evaluation.
type Store struct {
	index   map[string]*Variable
	entries []Entry
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]*Variable)}
}

// Entries returns the entries in insertion order.
func (s *Store) Entries() []Entry { return s.entries }

// Lookup returns the variable with the given name.
func (s *Store) Lookup(name string) (*Variable, bool) {
	v, ok := s.index[name]

	return v, ok
}

// Record appends h to the history of the named variable, creating the
// variable at the end of the entry list if it does not exist. It returns the
// type of the previous value and whether there was one.
func (s *Store) Record(name string, h History) (ValueType, bool) {
	if v, ok := s.index[name]; ok {
		prev := v.Last().Value.Type
		v.History = append(v.History, h)

		return prev, true
	}

	v := &Variable{Name: name, History: []History{h}}
	s.index[name] = v
	s.entries = append(s.entries, v)

	return 0, false
}

// Comment appends a comment entry.
func (s *Store) Comment(text string) {
	s.entries = append(s.entries, &CommentEntry{Text: text})
}
