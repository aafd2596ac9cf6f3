package wizard

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condaprep/condaprep/internal/config"
)

// scriptedUI replays queued answers; an errWizardBack or ErrCancelled
// entry simulates Esc or Ctrl+C on that prompt.
type scriptedUI struct {
	t       *testing.T
	inputs  []scriptedInput
	notes   []string
	confirm []scriptedConfirm
}

type scriptedInput struct {
	value string
	keep  bool // leave the prefilled value untouched
	err   error
}

type scriptedConfirm struct {
	value bool
	err   error
}

func (s *scriptedUI) Input(title string, value *string) error {
	require.NotEmpty(s.t, s.inputs, "unexpected Input(%q)", title)
	next := s.inputs[0]
	s.inputs = s.inputs[1:]
	if next.err != nil {
		return next.err
	}
	if !next.keep {
		*value = next.value
	}
	return nil
}

func (s *scriptedUI) Confirm(title string, value *bool) error {
	require.NotEmpty(s.t, s.confirm, "unexpected Confirm(%q)", title)
	next := s.confirm[0]
	s.confirm = s.confirm[1:]
	if next.err != nil {
		return next.err
	}
	*value = next.value
	return nil
}

func (s *scriptedUI) Note(title string, body string) error {
	s.notes = append(s.notes, title+": "+body)
	return nil
}

func TestRunWritesNewConfig(t *testing.T) {
	root := t.TempDir()
	ui := &scriptedUI{
		t: t,
		inputs: []scriptedInput{
			{value: "ci-env"},
			{value: "/opt/miniconda3"},
			{value: "ci/environment.yml"},
			{value: "coverage, coveralls"},
		},
		confirm: []scriptedConfirm{{value: true}},
	}

	var out bytes.Buffer
	require.NoError(t, Run(root, ui, &out))

	configPath := filepath.Join(root, config.ConfigFileName)
	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "ci-env", cfg.Env.Name)
	assert.Equal(t, "/opt/miniconda3", cfg.Install.Dir)
	assert.Equal(t, "ci/environment.yml", cfg.Env.SpecFile)
	assert.Equal(t, []string{"coverage", "coveralls"}, cfg.Reporting.Tools)
	assert.Contains(t, out.String(), "Wrote")
}

func TestRunUpdatesExistingConfigAndKeepsComments(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, config.ConfigFileName)
	existing := `# pinned by the infra team

[install]
dir = "/data/conda"

[env]
name = "old-env"
spec_file = "environment.yml"
`
	require.NoError(t, os.WriteFile(configPath, []byte(existing), 0o644))

	ui := &scriptedUI{
		t: t,
		inputs: []scriptedInput{
			{value: "new-env"},
			{keep: true}, // keep /data/conda
			{keep: true}, // keep environment.yml
			{keep: true}, // keep default tools
		},
		confirm: []scriptedConfirm{{value: true}},
	}

	var out bytes.Buffer
	require.NoError(t, Run(root, ui, &out))

	written, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "# pinned by the infra team")
	assert.Contains(t, string(written), `name = "new-env"`)
	assert.Contains(t, string(written), `dir = "/data/conda"`)
	assert.Contains(t, out.String(), "Updated")
}

func TestRunDeclinedConfirmWritesNothing(t *testing.T) {
	root := t.TempDir()
	ui := &scriptedUI{
		t: t,
		inputs: []scriptedInput{
			{value: "ci-env"},
			{keep: true},
			{keep: true},
			{keep: true},
		},
		confirm: []scriptedConfirm{{value: false}},
	}

	var out bytes.Buffer
	require.NoError(t, Run(root, ui, &out))

	_, err := os.Stat(filepath.Join(root, config.ConfigFileName))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "nothing written")
}

func TestRunCancelledOnFirstStep(t *testing.T) {
	root := t.TempDir()
	ui := &scriptedUI{
		t:      t,
		inputs: []scriptedInput{{err: errWizardBack}},
	}

	var out bytes.Buffer
	require.ErrorIs(t, Run(root, ui, &out), ErrCancelled)

	_, err := os.Stat(filepath.Join(root, config.ConfigFileName))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "aborted")
}

func TestRunCtrlCOnLaterStepCancels(t *testing.T) {
	root := t.TempDir()
	ui := &scriptedUI{
		t: t,
		inputs: []scriptedInput{
			{value: "ci-env"},
			{err: ErrCancelled},
		},
	}

	var out bytes.Buffer
	require.ErrorIs(t, Run(root, ui, &out), ErrCancelled)

	_, err := os.Stat(filepath.Join(root, config.ConfigFileName))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "aborted")
}

func TestRunBackNavigationRestoresSnapshot(t *testing.T) {
	root := t.TempDir()
	ui := &scriptedUI{
		t: t,
		inputs: []scriptedInput{
			{value: "first-env"},  // env name
			{err: errWizardBack},  // Esc on prefix, back to env name
			{value: "second-env"}, // env name again
			{keep: true},          // prefix
			{keep: true},          // spec file
			{keep: true},          // reporting tools
		},
		confirm: []scriptedConfirm{{value: true}},
	}

	var out bytes.Buffer
	require.NoError(t, Run(root, ui, &out))

	cfg, err := config.LoadConfig(filepath.Join(root, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "second-env", cfg.Env.Name)
}

func TestRunEmptyEnvNameReprompts(t *testing.T) {
	root := t.TempDir()
	ui := &scriptedUI{
		t: t,
		inputs: []scriptedInput{
			{value: "   "}, // rejected, note shown, prompt again
			{value: "ci-env"},
			{keep: true},
			{keep: true},
			{keep: true},
		},
		confirm: []scriptedConfirm{{value: true}},
	}

	var out bytes.Buffer
	require.NoError(t, Run(root, ui, &out))

	cfg, err := config.LoadConfig(filepath.Join(root, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "ci-env", cfg.Env.Name)
	assert.NotEmpty(t, ui.notes)
}

func TestRunRepairsInvalidConfig(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, config.ConfigFileName)
	// Missing env name fails strict validation but loads leniently.
	require.NoError(t, os.WriteFile(configPath, []byte("[env]\nspec_file = \"environment.yml\"\n"), 0o644))

	ui := &scriptedUI{
		t: t,
		inputs: []scriptedInput{
			{value: "repaired-env"},
			{keep: true},
			{keep: true},
			{keep: true},
		},
		confirm: []scriptedConfirm{{value: true}},
	}

	var out bytes.Buffer
	require.NoError(t, Run(root, ui, &out))

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "repaired-env", cfg.Env.Name)
}

func TestSplitToolList(t *testing.T) {
	assert.Equal(t, []string{"coverage", "coveralls"}, splitToolList("coverage, coveralls"))
	assert.Equal(t, []string{"coverage"}, splitToolList(" coverage ,, "))
	assert.Empty(t, splitToolList("  "))
}

func TestSeedChoicesFromSyntaxErrorFails(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, config.ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("[env\n"), 0o644))

	_, _, err := seedChoices(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load existing config")
}
