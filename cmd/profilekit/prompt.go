package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
)

// errProfileRequired is returned when a profile argument is missing and
// there is no terminal to ask on.
var errProfileRequired = errors.New("profile argument required")

// profileChoice is one option of the profile prompt.
type profileChoice struct {
	Label string
	Value string
}

func interactive() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// profileArg returns args[0], or asks the user to choose among choices when
// no argument was given on a terminal.
func profileArg(args []string, title string, choices func() ([]profileChoice, error)) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !interactive() {
		return "", errProfileRequired
	}
	opts, err := choices()
	if err != nil {
		return "", err
	}
	if len(opts) == 0 {
		return "", errors.New("no profiles yet; create one with 'add'")
	}
	return chooseProfile(title, opts)
}

func chooseProfile(title string, choices []profileChoice) (string, error) {
	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Label, c.Value)
	}
	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&choice),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return choice, nil
}
