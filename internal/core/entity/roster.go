package entity

// Roster is the ordered set of live entities. Indices are stable for the roster's
// lifetime; a restart builds a new Roster instead of mutating this one.
type Roster struct {
	entities []Entity
}

func NewRoster(capacity int) *Roster {
	return &Roster{entities: make([]Entity, 0, capacity)}
}

// Append adds e and returns its index.
func (r *Roster) Append(e Entity) int {
	r.entities = append(r.entities, e)
	return len(r.entities) - 1
}

// At returns the entity at index i, or nil when i is out of range.
func (r *Roster) At(i int) Entity {
	if r == nil || i < 0 || i >= len(r.entities) {
		return nil
	}
	return r.entities[i]
}

func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entities)
}

// All returns the backing slice; callers must not modify it.
func (r *Roster) All() []Entity {
	if r == nil {
		return nil
	}
	return r.entities
}
