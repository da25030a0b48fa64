package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
//
// PREFIX_SECTION_KEY_NAME maps to section.key_name. Only variables whose
// section is known are picked up, so unrelated PREFIX_* variables (such as
// the one naming the config file) never reach the config.
type EnvLoader struct {
	prefix   string
	sections map[string]bool
	mapping  map[string]string // env var -> config path
	lookup   func() []string
}

// NewEnvLoader creates an environment loader for prefix (including the
// trailing underscore) that accepts the given sections.
func NewEnvLoader(prefix string, sections ...string) *EnvLoader {
	l := &EnvLoader{
		prefix:   prefix,
		sections: make(map[string]bool, len(sections)),
		mapping:  make(map[string]string),
		lookup:   os.Environ,
	}
	for _, s := range sections {
		l.sections[strings.ToLower(s)] = true
	}
	return l
}

// AddMapping maps an environment variable to an explicit config path.
// Mapped variables bypass the section check.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads environment variables and returns a configuration map.
// Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.lookup() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.mapping[name]
		if !ok {
			path, ok = l.envToPath(name)
			if !ok {
				continue
			}
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts PREFIX_DISPATCHER_MAX_REPEAT_COUNT to
// dispatcher.max_repeat_count.
func (l *EnvLoader) envToPath(env string) (string, bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || key == "" || !l.sections[section] {
		return "", false
	}
	return section + "." + key, true
}

// parseValue converts booleans and integers; everything else stays a
// string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
