package tui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// keyNames are the names accepted for non-rune keys, lowercased.
var keyNames = map[string]tcell.Key{
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// canonicalNames maps keys back to the name used in canonical form.
var canonicalNames = map[tcell.Key]string{
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Backtab",
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Esc",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PgUp",
	tcell.KeyPgDn:       "PgDn",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// NormalizeKey parses a keymap key name such as "Ctrl+Left", "alt+x",
// "Space" or "g" and returns its canonical spelling. Modifiers are ordered
// Ctrl, Alt, Shift; named keys are matched case-insensitively.
func NormalizeKey(name string) (string, error) {
	parts := strings.Split(name, "+")
	// "+" itself and "Ctrl++" name the plus key.
	if strings.HasSuffix(name, "++") || name == "+" {
		parts = append(parts[:len(parts)-2], "+")
	}

	var mod tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control", "c":
			mod |= tcell.ModCtrl
		case "alt", "meta", "m":
			mod |= tcell.ModAlt
		case "shift", "s":
			mod |= tcell.ModShift
		default:
			return "", fmt.Errorf("key %q: unknown modifier %q", name, p)
		}
	}

	base := parts[len(parts)-1]
	if strings.EqualFold(base, "space") {
		base = " "
	}
	if k, ok := keyNames[strings.ToLower(base)]; ok {
		return keyName(k, 0, mod), nil
	}
	if utf8.RuneCountInString(base) == 1 {
		r, _ := utf8.DecodeRuneInString(base)
		return keyName(tcell.KeyRune, r, mod), nil
	}
	return "", fmt.Errorf("key %q: unknown key %q", name, base)
}

// EventName returns the canonical name of a key event.
func EventName(ev *tcell.EventKey) string {
	return keyName(ev.Key(), ev.Rune(), ev.Modifiers())
}

func keyName(k tcell.Key, r rune, mod tcell.ModMask) string {
	var base string
	switch {
	case k == tcell.KeyRune:
		// Shift is already in the rune.
		mod &^= tcell.ModShift
		if mod&tcell.ModCtrl != 0 {
			r = unicode.ToLower(r)
		}
		if r == ' ' {
			base = "Space"
		} else {
			base = string(r)
		}
	case k == tcell.KeyBacktab:
		mod &^= tcell.ModShift
		base = canonicalNames[k]
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && canonicalNames[k] == "":
		mod |= tcell.ModCtrl
		base = string(rune('a' + k - tcell.KeyCtrlA))
	default:
		base = canonicalNames[k]
		if base == "" {
			base = fmt.Sprintf("Key[%d]", k)
		}
	}

	var b strings.Builder
	if mod&tcell.ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if mod&tcell.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if mod&tcell.ModShift != 0 {
		b.WriteString("Shift+")
	}
	b.WriteString(base)
	return b.String()
}
