package wisdom3d

// EncounterView is told about every new encounter, newest item only.
type EncounterView interface {
	ShowLatest(Metadata)
}

// Tracker keeps the encounter log: insertion ordered, deduplicated by sentence.
// Not safe for concurrent use; all calls come from the frame loop.
type Tracker struct {
	seen  map[string]struct{}
	log   []Metadata
	dirty bool
	view  EncounterView
}

func NewTracker(view EncounterView) *Tracker {
	return &Tracker{seen: make(map[string]struct{}), view: view}
}

// Record appends meta when its sentence was not seen yet and reports whether
// it did. Repeated calls with the same sentence are no-ops.
func (t *Tracker) Record(meta Metadata) bool {
	if _, ok := t.seen[meta.Sentence]; ok {
		return false
	}
	t.seen[meta.Sentence] = struct{}{}
	t.log = append(t.log, meta)
	t.dirty = true
	if t.view != nil {
		t.view.ShowLatest(meta)
	}
	return true
}

// All returns the encounters oldest-first.
func (t *Tracker) All() []Metadata {
	out := make([]Metadata, len(t.log))
	copy(out, t.log)
	return out
}

// Newest returns the encounters newest-first, as the log panel lists them.
func (t *Tracker) Newest() []Metadata {
	out := make([]Metadata, len(t.log))
	for i, m := range t.log {
		out[len(t.log)-1-i] = m
	}
	return out
}

func (t *Tracker) Latest() (Metadata, bool) {
	if len(t.log) == 0 {
		return Metadata{}, false
	}
	return t.log[len(t.log)-1], true
}

func (t *Tracker) Len() int { return len(t.log) }

// TakeDirty reports whether the overlay needs a redraw and clears the flag.
func (t *Tracker) TakeDirty() bool {
	d := t.dirty
	t.dirty = false
	return d
}

// logEncounterView writes encounters to the log; used when nothing draws them.
type logEncounterView struct{}

func (logEncounterView) ShowLatest(m Metadata) {
	Log("tracker").Sugar().Infow("encounter", "sentence", m.Sentence, "title", m.Title, "author", m.Author)
}
