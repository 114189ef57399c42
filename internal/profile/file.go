// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-verify/pkg/types"
)

// ProfileFile is the YAML representation of an exported profile.
//
//	name: Jane Smith
//	publications:
//	  - title: Deep Learning for X
type ProfileFile struct {
	Name         string                     `yaml:"name,omitempty"`
	Source       string                     `yaml:"source,omitempty"`
	Publications []types.ClaimedPublication `yaml:"publications"`
}

// File reads claimed publications from a local file: YAML (.yaml, .yml) in
// the ProfileFile shape, or plain text with one title per line. Blank lines
// and lines starting with '#' are ignored in text files.
type File struct {
	Path string

	label string
}

// Label returns the profile's declared source, or "Profile file".
func (f *File) Label() string {
	if f.label != "" {
		return f.label
	}
	return "Profile file"
}

// Publications reads the file.
func (f *File) Publications(_ context.Context) ([]types.ClaimedPublication, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		var pf ProfileFile
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("parsing profile file %s: %w", f.Path, err)
		}
		f.label = pf.Source
		return keepTitled(pf.Publications), nil
	default:
		return readTitleLines(data)
	}
}

func readTitleLines(data []byte) ([]types.ClaimedPublication, error) {
	var pubs []types.ClaimedPublication
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pubs = append(pubs, types.ClaimedPublication{Title: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading titles: %w", err)
	}
	return pubs, nil
}

// WriteProfileFile saves publications as a YAML profile file that File can
// read back, so a fetched profile can be verified again offline.
func WriteProfileFile(path string, pf ProfileFile) error {
	data, err := yaml.Marshal(&pf)
	if err != nil {
		return fmt.Errorf("marshaling profile file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
