package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted is returned when the user interrupts a prompt.
var errAborted = errors.New("selection aborted")

// prompter asks the user which models to generate.
type prompter interface {
	SelectModels(ctx context.Context, names []string) ([]string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) SelectModels(ctx context.Context, names []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{
		Message:  "Models to generate:",
		Options:  names,
		Default:  names,
		Help:     "Space toggles a model, enter confirms.",
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.MinItems(1))); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, errAborted
		}
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return out, nil
}
