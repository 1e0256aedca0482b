package cmd

import "testing"

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("guide")
		env.contains(out, "# seek")
		env.contains(out, "seek serve")
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newTestEnv(t)

		out, _ := env.runErr("guide", "nonexistent")
		env.contains(out, "Available:")
	})
}

func TestGuide_Topics(t *testing.T) {
	tests := []struct {
		topic   string
		contain string
	}{
		{"search", "seek search"},
		{"read", "seek read"},
		{"serve", "read_file"},
		{"verify", "seek verify"},
		{"config", "search.timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			env := newTestEnv(t)

			out := env.run("guide", tc.topic)
			env.contains(out, tc.contain)
		})
	}
}

func TestGuide_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("guide", "nonexistent")
	if err == nil {
		t.Error("Guide(nonexistent) = nil, want error")
	}
}

// TestGuide_InvalidConfig checks guide does not need a loadable config.
func TestGuide_InvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	env.write(".seek/config.yaml", "search: [\n")

	out := env.run("guide", "config")
	env.contains(out, "search.timeout")
}
