package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/condaprep/condaprep/internal/config"
	"github.com/condaprep/condaprep/internal/fsutil"
	"github.com/condaprep/condaprep/internal/messages"
)

// ErrCancelled is returned by Run when the user exits the wizard without
// completing it, so callers can exit nonzero without printing anything more.
var ErrCancelled = errors.New("wizard cancelled")

var (
	errWizardBack = errors.New("wizard back requested")

	loadConfigLenientFunc = config.LoadConfigLenient
)

// Run starts the interactive init wizard and writes user-facing output to out.
func Run(root string, ui UI, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}
	paths := config.DefaultPaths(root)

	choices, existed, err := seedChoices(paths.ConfigPath)
	if err != nil {
		return err
	}

	if err := ui.Note(messages.WizardNoteTitle, messages.WizardNoteBody); err != nil {
		return exitQuietly(err, out)
	}

	if err := promptFlow(ui, choices); err != nil {
		return exitQuietly(err, out)
	}

	applied, err := confirmAndApply(paths.ConfigPath, ui, choices, out)
	if err != nil {
		return exitQuietly(err, out)
	}
	if !applied {
		return nil
	}

	if existed {
		_, _ = fmt.Fprintf(out, messages.InitUpdatedConfigFmt, paths.ConfigPath)
	} else {
		_, _ = fmt.Fprintf(out, messages.InitWroteConfigFmt, paths.ConfigPath)
	}
	_, _ = color.New(color.FgGreen).Fprintln(out, messages.InitNextSteps)
	return nil
}

// seedChoices loads any existing config leniently so the wizard can repair
// configs that fail validation. Returns whether the config file existed.
func seedChoices(configPath string) (*Choices, bool, error) {
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return NewChoices(), false, nil
		}
		return nil, false, err
	}
	cfg, err := loadConfigLenientFunc(configPath)
	if err != nil {
		// TOML syntax error or file unreadable, nothing to repair from.
		return nil, false, fmt.Errorf(messages.WizardLoadConfigFmt, err)
	}
	return ChoicesFromConfig(cfg), true, nil
}

type wizardStep int

const (
	stepEnvName wizardStep = iota
	stepPrefixDir
	stepSpecFile
	stepReporting
)

// promptFlow walks the question steps with Esc-based back navigation.
func promptFlow(ui UI, choices *Choices) error {
	step := stepEnvName
	for {
		snapshot := choices.Clone()
		var err error

		switch step {
		case stepEnvName:
			err = promptEnvName(ui, choices)
		case stepPrefixDir:
			err = promptPrefixDir(ui, choices)
		case stepSpecFile:
			err = promptSpecFile(ui, choices)
		case stepReporting:
			err = promptReporting(ui, choices)
		default:
			return nil
		}

		if err == nil {
			if step == stepReporting {
				return nil
			}
			step++
			continue
		}

		if !errors.Is(err, errWizardBack) {
			return err
		}

		if snapshot != nil {
			*choices = *snapshot
		}
		if step == stepEnvName {
			// Esc on the first step exits the wizard.
			return ErrCancelled
		}
		step--
	}
}

func promptEnvName(ui UI, choices *Choices) error {
	for {
		name := choices.EnvName
		if err := ui.Input(messages.WizardTitleEnvName, &name); err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		if name != "" {
			choices.EnvName = name
			return nil
		}
		if err := ui.Note(messages.WizardTitleEnvName, messages.WizardEnvNameEmpty); err != nil {
			return err
		}
	}
}

func promptPrefixDir(ui UI, choices *Choices) error {
	dir := choices.PrefixDir
	if err := ui.Input(messages.WizardTitlePrefixDir, &dir); err != nil {
		return err
	}
	if dir = strings.TrimSpace(dir); dir != "" {
		choices.PrefixDir = dir
	}
	return nil
}

func promptSpecFile(ui UI, choices *Choices) error {
	file := choices.SpecFile
	if err := ui.Input(messages.WizardTitleSpecFile, &file); err != nil {
		return err
	}
	if file = strings.TrimSpace(file); file != "" {
		choices.SpecFile = file
	}
	return nil
}

func promptReporting(ui UI, choices *Choices) error {
	raw := joinToolList(choices.ReportingTools)
	if err := ui.Input(messages.WizardTitleReporting, &raw); err != nil {
		return err
	}
	choices.ReportingTools = splitToolList(raw)
	return nil
}

// confirmAndApply previews the rewrite, asks for confirmation, and writes the
// config. Returns false when the user declined.
func confirmAndApply(configPath string, ui UI, choices *Choices, out io.Writer) (bool, error) {
	preview, next, err := buildRewritePreview(configPath, choices)
	if err != nil {
		return false, err
	}
	if err := ui.Note(messages.WizardPreviewTitle, preview); err != nil {
		return false, err
	}

	confirm := true
	if err := ui.Confirm(messages.WizardTitleConfirm, &confirm); err != nil {
		return false, err
	}
	if !confirm {
		_, _ = fmt.Fprintln(out, messages.WizardDeclinedWrite)
		return false, nil
	}

	if err := Apply(configPath, next); err != nil {
		return false, err
	}
	return true, nil
}

// Apply writes the rendered config content atomically.
func Apply(configPath string, content string) error {
	if err := fsutil.WriteFileAtomic(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf(messages.WizardWriteConfigFmt, err)
	}
	return nil
}

// Render produces the condaprep.toml content for the given choices, patching
// existing content at configPath when present.
func Render(configPath string, choices *Choices) (string, error) {
	current, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	next, err := PatchConfig(string(current), choices)
	if err != nil {
		return "", fmt.Errorf(messages.WizardPatchConfigFmt, err)
	}
	return next, nil
}

// buildRewritePreview returns a unified diff of the pending rewrite along
// with the rendered content.
func buildRewritePreview(configPath string, choices *Choices) (string, string, error) {
	current, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return "", "", err
	}
	next, err := PatchConfig(string(current), choices)
	if err != nil {
		return "", "", fmt.Errorf(messages.WizardPatchConfigFmt, err)
	}

	diff := strings.TrimSpace(udiff.Unified(
		config.ConfigFileName+" (current)",
		config.ConfigFileName+" (proposed)",
		string(current),
		next,
	))
	if diff == "" {
		return messages.WizardNoChanges, next, nil
	}
	return diff, next, nil
}

// exitQuietly prints the abort message for back/cancel sentinels and reports
// the run as cancelled so the command can exit nonzero without more output.
func exitQuietly(err error, out io.Writer) error {
	if errors.Is(err, errWizardBack) || errors.Is(err, ErrCancelled) {
		_, _ = fmt.Fprintln(out, messages.WizardAborted)
		return ErrCancelled
	}
	return err
}
