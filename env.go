/* Released under an MIT-style license. See LICENSE. */

package main

// Binding is one (name, location) pair in an environment.
type Binding struct {
	Name string
	Loc  Location
}

// Env is an ordered list of bindings, newest last. Lookup scans from
// the end so that the innermost shadowing binding for a name wins,
// matching the original's reverse-iterator lookup over its own
// std::vector<std::pair<std::string, Location>>.
type Env []Binding

// Lookup finds the location most recently bound to name, or false if
// no binding in this environment uses that name.
func (e Env) Lookup(name string) (Location, bool) {
	for i := len(e) - 1; i >= 0; i-- {
		if e[i].Name == name {
			return e[i].Loc, true
		}
	}
	return 0, false
}

// Capture builds a closure's saved environment: the subset of env
// binding a name in free, compacted down to just those entries while
// preserving their original relative order. Scanning from the end
// lets the first (innermost) binding of each free name win, exactly as
// a live lookup would; the result is reversed back into source order
// afterward.
func (e Env) Capture(free map[string]bool) Env {
	if len(free) == 0 {
		return nil
	}
	remaining := make(map[string]bool, len(free))
	for name := range free {
		remaining[name] = true
	}
	var saved Env
	for i := len(e) - 1; i >= 0 && len(remaining) > 0; i-- {
		name := e[i].Name
		if remaining[name] {
			saved = append(saved, e[i])
			delete(remaining, name)
		}
	}
	for i, j := 0, len(saved)-1; i < j; i, j = i+1, j-1 {
		saved[i], saved[j] = saved[j], saved[i]
	}
	return saved
}
