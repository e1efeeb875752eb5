package oauth1

import "iter"

// Params is an insertion-ordered set of string parameters. Setting an
// existing key replaces its value in place and keeps its position.
//
// The zero value is an empty set ready to use.
type Params struct {
	keys   []string
	values map[string]string
}

// Set stores value under key.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}

	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}

	p.values[key] = value
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.keys)
}

// Keys returns the parameter names in insertion order.
func (p *Params) Keys() []string {
	return append([]string(nil), p.keys...)
}

// All iterates over the parameters in insertion order.
func (p *Params) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of p.
func (p *Params) Clone() *Params {
	c := &Params{
		keys:   make([]string, len(p.keys)),
		values: make(map[string]string, len(p.values)),
	}

	copy(c.keys, p.keys)
	for k, v := range p.values {
		c.values[k] = v
	}

	return c
}

// Merge copies every parameter of other into p. Values in other replace
// values already present under the same name.
func (p *Params) Merge(other *Params) {
	for k, v := range other.All() {
		p.Set(k, v)
	}
}

// Without returns a copy of p with key removed.
func (p *Params) Without(key string) *Params {
	c := &Params{}
	for k, v := range p.All() {
		if k != key {
			c.Set(k, v)
		}
	}

	return c
}
