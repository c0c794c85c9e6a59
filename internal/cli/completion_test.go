package cli

import (
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _matbench_completions matbench", "--min-block", "--output|-o)", "compgen -f"}},
		{"zsh", []string{"#compdef matbench", "'(-o --output)'{-o,--output}'[Report output file]:file:_files'", "'--log-level[Log level]:level:(debug info warn error disabled)'"}},
		{"fish", []string{"complete -c matbench -f", "# Sweep", "complete -c matbench -l verify -d 'Check results against the unblocked product'", "-s n -d 'Matrix order' -xa"}},
		{"powershell", []string{"Register-ArgumentCompleter -CommandName 'matbench'", "'--completion' {", "@{Name = '-q'"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			if err := GenerateCompletion(&out, tt.shell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			script := out.String()
			for _, want := range tt.contains {
				if !strings.Contains(script, want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	var out strings.Builder
	err := GenerateCompletion(&out, "tcsh")
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("expected unsupported shell error, got %v", err)
	}
	if out.Len() != 0 {
		t.Error("nothing should be written for an unsupported shell")
	}
}

// TestFlagRegistryMatchesParser guards against a flag being added to the
// parser without completion support.
func TestFlagRegistryMatchesParser(t *testing.T) {
	t.Parallel()
	want := []string{"n", "min-block", "max-block", "seed", "repeat", "verify", "legacy-block-count",
		"max-tasks", "timeout", "output", "quiet", "verbose", "log-level", "metrics-addr",
		"tui", "no-color", "completion", "version"}
	known := map[string]bool{}
	for _, f := range flagRegistry {
		known[f.Long] = true
		known[f.Short] = true
	}
	for _, name := range want {
		if !known[name] {
			t.Errorf("flag %q missing from the completion registry", name)
		}
	}
}
