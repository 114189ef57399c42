// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt collects verification inputs from a terminal. Values
// already supplied on the command line are never asked for again.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/pdiddy/scholar-verify/internal/ident"
)

// ErrNoInput is returned when a required value is missing and cannot be
// read, either because input ended or because the session is not
// interactive.
var ErrNoInput = errors.New("required input not provided")

// Answers holds the author details for one verification run.
type Answers struct {
	Name         string
	Profile      string
	ORCID        string
	ScopusID     string
	ResearcherID string
}

// Prompter reads answers line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Fill prompts for every empty field of a. Name and Profile are required
// and re-asked until non-empty. The optional identifiers are asked only
// when both required values also had to be prompted for, so a fully
// scripted invocation is never interrupted.
func (p *Prompter) Fill(a *Answers) error {
	askOptional := a.Name == "" && a.Profile == ""

	if a.Name == "" || a.Profile == "" {
		fmt.Fprintln(p.out, "\nScholar profile authorship verification")
		fmt.Fprintln(p.out, strings.Repeat("-", 50))
	}

	var err error
	if a.Name == "" {
		if a.Name, err = p.Required("Enter FULL author name (required): ", "Name cannot be empty: "); err != nil {
			return fmt.Errorf("author name: %w", err)
		}
	}
	if a.Profile == "" {
		if a.Profile, err = p.Required("Enter profile ID, URL, or file (required): ", "Profile required: "); err != nil {
			return fmt.Errorf("profile: %w", err)
		}
	}
	if !askOptional {
		return nil
	}

	fmt.Fprintln(p.out, "\n(Optional identifiers, press Enter to skip)")
	for {
		if a.ORCID, err = p.Optional("ORCID iD: "); err != nil {
			return err
		}
		if a.ORCID == "" || ident.ValidORCID(a.ORCID) {
			break
		}
		fmt.Fprintf(p.out, "  %q is not a valid ORCID iD (checksum failed); re-enter or press Enter to skip\n", a.ORCID)
	}
	if a.ScopusID, err = p.Optional("Scopus Author ID: "); err != nil {
		return err
	}
	if a.ResearcherID, err = p.Optional("ResearcherID / Publons ID: "); err != nil {
		return err
	}
	return nil
}

// Required asks label and repeats with retry until a non-empty line is
// read. It returns ErrNoInput if input ends first.
func (p *Prompter) Required(label, retry string) (string, error) {
	fmt.Fprint(p.out, label)
	for {
		line, err := p.readLine()
		if line != "" {
			return line, nil
		}
		if err != nil {
			return "", ErrNoInput
		}
		fmt.Fprint(p.out, "  "+retry)
	}
}

// Optional asks label once. End of input yields an empty answer.
func (p *Prompter) Optional(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && !errors.Is(err, io.EOF) {
		return line, fmt.Errorf("reading input: %w", err)
	}
	return line, err
}

// Validate checks answers collected without a terminal.
func Validate(a Answers) error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("author name: %w", ErrNoInput)
	case strings.TrimSpace(a.Profile) == "":
		return fmt.Errorf("profile: %w", ErrNoInput)
	}
	return nil
}
