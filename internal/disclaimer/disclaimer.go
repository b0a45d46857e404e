// Package disclaimer checks and inserts copyright and license headers.
//
// A header is three comment lines at the top of a file, after an optional
// shebang and an optional block comment opener:
//
//	# Copyright © 2023 Intel Corporation
//	#
//	# SPDX-License-Identifier: Apache License 2.0
package disclaimer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultOwner is the copyright holder used when none is given.
const DefaultOwner = "Intel Corporation"

type Filetype string

const (
	Dockerfile Filetype = "Dockerfile"
	JS         Filetype = ".js"
	Less       Filetype = ".less"
	Markdown   Filetype = ".md"
	Python     Filetype = ".py"
	Shell      Filetype = ".sh"
)

var filetypes = []Filetype{Dockerfile, JS, Less, Markdown, Python, Shell}

// commentStyle says how a disclaimer is wrapped for a file type.
type commentStyle struct {
	opener string
	closer string
	prefix string
}

var commentStyles = map[Filetype]commentStyle{
	Dockerfile: {prefix: "# "},
	JS:         {opener: "/**\n", closer: " */\n\n", prefix: " * "},
	Less:       {opener: "/**\n", closer: " */\n", prefix: " * "},
	Markdown:   {opener: "<!--\n", closer: "-->\n\n"},
	Python:     {prefix: "# "},
	Shell:      {prefix: "# "},
}

var disclaimerLines = []*regexp.Regexp{
	regexp.MustCompile(`^[ *#]*Copyright © [0-9]{4} .*$`),
	regexp.MustCompile(`^[ *#]*$`),
	regexp.MustCompile(`^[ *#]*SPDX-License-Identifier: .*$`),
}

// GuessFiletype derives the file type from the name. Any file whose base
// name starts with "Dockerfile" is a Dockerfile, "Dockerfile.api" included.
func GuessFiletype(filename string) (Filetype, bool) {
	if strings.HasPrefix(filepath.Base(filename), string(Dockerfile)) {
		return Dockerfile, true
	}
	for _, ft := range filetypes {
		if strings.HasSuffix(filename, string(ft)) {
			return ft, true
		}
	}
	return "", false
}

// Header describes the disclaimer to generate.
type Header struct {
	License string
	Owner   string
	// Year defaults to the current year.
	Year int
}

func (h Header) copyright() string {
	year := h.Year
	if year == 0 {
		year = time.Now().Year()
	}
	owner := h.Owner
	if owner == "" {
		owner = DefaultOwner
	}
	return fmt.Sprintf("Copyright © %d %s", year, owner)
}

// Generate renders the disclaimer for ft, comment markers included.
func Generate(ft Filetype, h Header) string {
	style := commentStyles[ft]
	return strings.Join([]string{
		style.opener + style.prefix + h.copyright(),
		strings.TrimRight(style.prefix, " "),
		style.prefix + "SPDX-License-Identifier: " + h.License,
		style.closer,
	}, "\n")
}

// HasDisclaimer reports whether content starts with a disclaimer.
func HasDisclaimer(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	// shebang, opener and the disclaimer itself, plus the unsplit rest
	lines := strings.SplitN(string(content), "\n", len(disclaimerLines)+3)

	if strings.HasPrefix(lines[0], "#!") {
		lines = lines[1:]
	}
	if len(lines) > 0 && (lines[0] == "/**" || lines[0] == "<!--") {
		lines = lines[1:]
	}
	if len(lines) < len(disclaimerLines) {
		return false
	}

	for i, re := range disclaimerLines {
		if !re.MatchString(lines[i]) {
			return false
		}
	}
	return true
}

// NeedsDisclaimer reports whether filename is a known, non-empty file type
// lacking a disclaimer.
func NeedsDisclaimer(filename string) (bool, error) {
	if _, ok := GuessFiletype(filename); !ok {
		return false, nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return false, err
	}
	if len(content) == 0 {
		return false, nil
	}
	return !HasDisclaimer(content), nil
}

// Insert places the disclaimer for ft after a leading shebang line, or at
// the very top when there is none.
func Insert(content []byte, ft Filetype, h Header) []byte {
	disclaimer := Generate(ft, h)

	first, rest := content, []byte(nil)
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		first, rest = content[:i+1], content[i+1:]
	}

	var out bytes.Buffer
	if bytes.HasPrefix(first, []byte("#!")) {
		out.Write(first)
		out.WriteString(disclaimer)
		out.Write(rest)
	} else {
		out.WriteString(disclaimer)
		out.Write(content)
	}
	return out.Bytes()
}

// FixFile inserts the disclaimer into filename and checks the result.
func FixFile(filename string, h Header) error {
	ft, ok := GuessFiletype(filename)
	if !ok {
		return fmt.Errorf("unknown file type: %s", filename)
	}
	info, err := os.Stat(filename)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	fixed := Insert(content, ft, h)
	if err := os.WriteFile(filename, fixed, info.Mode().Perm()); err != nil {
		return err
	}
	if !HasDisclaimer(fixed) {
		return fmt.Errorf("fix did not work for %s", filename)
	}
	return nil
}
