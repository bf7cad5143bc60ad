package model

// Todo is the domain model for a todo entry.
// Text is kept verbatim; nothing trims or normalizes it.
type Todo struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// List is the ordered todo list owned by a session.
// A todo has no identity beyond its position.
type List []Todo

// Add appends a new, uncompleted todo and returns it.
func (l *List) Add(text string) Todo {
	t := Todo{Text: text}
	*l = append(*l, t)
	return t
}

// Toggle flips the completed flag of the todo at the 0-based index i and
// returns the updated todo.
func (l List) Toggle(i int) Todo {
	l[i].Completed = !l[i].Completed
	return l[i]
}

// Remove deletes the todo at the 0-based index i, shifting later entries
// down by one, and returns the removed todo.
func (l *List) Remove(i int) Todo {
	removed := (*l)[i]
	*l = append((*l)[:i], (*l)[i+1:]...)
	return removed
}

// Valid reports whether i addresses an entry of the list.
func (l List) Valid(i int) bool { return i >= 0 && i < len(l) }

// Clone returns a copy that shares no backing array with l.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Stats counts completed and pending todos.
func (l List) Stats() (done, pending int) {
	for _, t := range l {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
