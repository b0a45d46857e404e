// Package shell checks that shell scripts opt in to strict error handling.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// directive is a line a script must contain, or one of the alternates that
// explicitly opt out of it.
type directive struct {
	line       string
	alternates []string
}

var requiredDirectives = []directive{
	{"set -e", []string{"set +e", "# no_set_e"}},
	{"set -o pipefail", []string{"set +o pipefail", "# no_pipefail"}},
	{"#!/usr/bin/env bash", []string{"#!/usr/bin/env sh"}},
}

func (d directive) matches(line string) bool {
	if line == d.line {
		return true
	}
	for _, alt := range d.alternates {
		if line == alt {
			return true
		}
	}
	return false
}

// Lint returns one message per required directive missing from r.
func Lint(r io.Reader) ([]string, error) {
	// lines may be of any length
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	var problems []string
	for _, d := range requiredDirectives {
		found := false
		for _, line := range lines {
			if d.matches(line) {
				found = true
				break
			}
		}
		if !found {
			problems = append(problems, fmt.Sprintf("error: Missing `%s` directive.", d.line))
		}
	}
	return problems, nil
}

// LintFile lints the script at path. Messages are prefixed with the path.
func LintFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	problems, err := Lint(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	for i, p := range problems {
		problems[i] = path + ": " + p
	}
	return problems, nil
}
