package input

import "testing"

func TestActionSourceString(t *testing.T) {
	tests := []struct {
		source ActionSource
		want   string
	}{
		{SourceKeyboard, "keyboard"},
		{SourceCLI, "cli"},
		{SourcePlugin, "plugin"},
		{SourceAPI, "api"},
		{ActionSource(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("ActionSource(%d).String() = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestActionArgsGetters(t *testing.T) {
	args := ActionArgs{Extra: map[string]interface{}{
		"name":  "exit",
		"int":   3,
		"int64": int64(4),
		"float": float64(5),
		"flag":  true,
	}}

	if got := args.GetString("name"); got != "exit" {
		t.Errorf("GetString = %q, want exit", got)
	}
	if got := args.GetInt("int"); got != 3 {
		t.Errorf("GetInt(int) = %d, want 3", got)
	}
	if got := args.GetInt("int64"); got != 4 {
		t.Errorf("GetInt(int64) = %d, want 4", got)
	}
	if got := args.GetInt("float"); got != 5 {
		t.Errorf("GetInt(float) = %d, want 5", got)
	}
	if !args.GetBool("flag") {
		t.Error("GetBool(flag) = false, want true")
	}
	if got := args.GetString("int"); got != "" {
		t.Errorf("GetString on int = %q, want empty", got)
	}
	if _, ok := (ActionArgs{}).Get("missing"); ok {
		t.Error("Get on nil Extra should report missing")
	}
}

func TestActionWithCount(t *testing.T) {
	a := NewAction("pair.exit", SourceKeyboard)
	b := a.WithCount(3)
	if a.Count != 0 {
		t.Errorf("original count changed to %d", a.Count)
	}
	if b.Count != 3 {
		t.Errorf("count = %d, want 3", b.Count)
	}
}

func TestActionWithArgCopies(t *testing.T) {
	a := NewAction("user.x", SourcePlugin).WithArg("k", "v")
	b := a.WithArg("k", "w")
	if got := a.Args.GetString("k"); got != "v" {
		t.Errorf("original arg = %q, want v", got)
	}
	if got := b.Args.GetString("k"); got != "w" {
		t.Errorf("copied arg = %q, want w", got)
	}
}

func TestActionNamespace(t *testing.T) {
	tests := map[string]string{
		"pair.exit":     "pair",
		"user.wrap.out": "user",
		"ping":          "",
		"":              "",
		".leadingDot":   "",
	}
	for name, want := range tests {
		if got := (Action{Name: name}).Namespace(); got != want {
			t.Errorf("Namespace(%q) = %q, want %q", name, got, want)
		}
	}
}
