package models

// Tasks is an ordered task collection. Insertion order is append order.
//
// The methods never modify the receiver; every mutation returns a new slice
// so that holders of an older value keep seeing the old contents.
type Tasks []Task

// Clone returns a copy of the collection that shares no backing array.
func (ts Tasks) Clone() Tasks {
	out := make(Tasks, len(ts))
	copy(out, ts)
	return out
}

// Append returns a new collection with t added at the end.
func (ts Tasks) Append(t Task) Tasks {
	out := make(Tasks, len(ts), len(ts)+1)
	copy(out, ts)
	return append(out, t)
}

// Toggle returns a new collection with the completion flag of the task
// matching id flipped. An unknown id yields an unchanged copy.
func (ts Tasks) Toggle(id string) Tasks {
	out := ts.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
			break
		}
	}
	return out
}

// Remove returns a new collection without the task matching id, keeping the
// order of the rest. An unknown id yields an unchanged copy.
func (ts Tasks) Remove(id string) Tasks {
	out := make(Tasks, 0, len(ts))
	for _, t := range ts {
		if t.ID == id {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Find returns the task matching id.
func (ts Tasks) Find(id string) (Task, bool) {
	for _, t := range ts {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Sanitize drops entries that break the collection invariants: invalid tasks
// and repeated ids (the first occurrence wins). It reports how many entries
// were dropped.
func (ts Tasks) Sanitize() (Tasks, int) {
	out := make(Tasks, 0, len(ts))
	seen := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		if err := t.Validate(); err != nil {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, len(ts) - len(out)
}

// Remaining counts the tasks that are not completed.
func (ts Tasks) Remaining() int {
	n := 0
	for _, t := range ts {
		if !t.Completed {
			n++
		}
	}
	return n
}
