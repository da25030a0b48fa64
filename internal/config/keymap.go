package config

import (
	"sort"
	"strings"
)

// Keymap maps key names ("Tab", "Ctrl+Left", "g") to dispatcher actions.
// An empty action unbinds a key that a lower layer bound.
type Keymap map[string]string

// Binding is one key/action pair of a keymap.
type Binding struct {
	Key    string
	Action string
}

// DefaultKeymap returns the built-in viewer bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		"Tab":        "pair.exit",
		"Backtab":    "pair.enter",
		"Ctrl+Left":  "pair.exitBackward",
		"Ctrl+Right": "pair.enterForward",
	}
}

// Bindings returns the bound keys sorted by key name.
func (k Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k))
	for key, action := range k {
		if action == "" {
			continue
		}
		out = append(out, Binding{Key: key, Action: action})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Lookup returns the action bound to key.
func (k Keymap) Lookup(key string) (string, bool) {
	action, ok := k[key]
	return action, ok && action != ""
}

func (k Keymap) validate() []error {
	var errs []error
	for _, b := range k.Bindings() {
		if strings.TrimSpace(b.Key) == "" {
			errs = append(errs, &ValidationError{
				Path:    "keymap",
				Message: "empty key name",
				Value:   b.Action,
				Code:    ErrCodePatternMismatch,
			})
		}
		ns, name, ok := strings.Cut(b.Action, ".")
		if !ok || ns == "" || name == "" {
			errs = append(errs, &ValidationError{
				Path:    "keymap." + b.Key,
				Message: "action must be namespace.name",
				Value:   b.Action,
				Code:    ErrCodePatternMismatch,
			})
		}
	}
	return errs
}
