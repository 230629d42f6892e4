package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errInvalidInput     = errors.New("invalid input")
)

// readPassword reads a line from the terminal without echo. Tests replace it.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func promptPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword()
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return string(pw), nil
}

// promptNewPassword asks for a password twice and fails unless both match.
func promptNewPassword(w io.Writer) (string, error) {
	first, err := promptPassword(w, "New password: ")
	if err != nil {
		return "", err
	}
	second, err := promptPassword(w, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}
