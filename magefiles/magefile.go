//go:build mage

// Package main contains Mage build targets for scholar-verify developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "scholar-verify"
	cmdPkg  = "./cmd/scholar-verify"
)

// projectDirs lists the working directories a verification run uses.
var projectDirs = []string{
	".secrets",
	".scholar-verify",
	"reports",
}

// secretFiles are created empty by Init so users know which keys exist.
var secretFiles = []string{
	"semantic-scholar-api-key",
	"crossref-mailto",
	"openalex-email",
}

const sampleConfig = `# scholar-verify configuration. Environment variables override these
# values: SCHOLAR_VERIFY_LOOKUP_TIMEOUT, SCHOLAR_VERIFY_BATCH_DELAY, ...
lookup:
  timeout: 30s
  rate_limit_retries: 2
  crossref: true
  semantic_scholar: true
  openalex: false
batch:
  delay: 2s
  jitter: 1s
  output_dir: reports
  store_path: .scholar-verify/history.db
`

// Init creates the working directories, empty secret files, and a sample
// scholar-verify.yaml. Existing files are left alone.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	for _, name := range secretFiles {
		if err := createIfMissing(filepath.Join(".secrets", name), nil, 0o600); err != nil {
			return err
		}
	}
	if err := createIfMissing("scholar-verify.yaml", []byte(sampleConfig), 0o644); err != nil {
		return err
	}
	fmt.Println("Project initialized.")
	return nil
}

func createIfMissing(path string, data []byte, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println("  ", path)
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Verify builds the CLI and verifies a profile. The author and profile come
// from the NAME and PROFILE environment variables; ARGS adds extra flags.
func Verify() error {
	mg.Deps(Build)
	name, profile := os.Getenv("NAME"), os.Getenv("PROFILE")
	if name == "" || profile == "" {
		return fmt.Errorf("set NAME and PROFILE, e.g. NAME=\"Jane Smith\" PROFILE=qc6CJjYAAAAJ mage verify")
	}
	args := []string{"verify", "--name", name, "--profile", profile}
	args = append(args, strings.Fields(os.Getenv("ARGS"))...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// History builds the CLI and lists recorded runs.
func History() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "history")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints project metrics: Go production/test lines and documentation word count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):          %d\n", docWords)
	return nil
}

// skipDir reports whether a directory is outside the project's own sources.
func skipDir(path string) bool {
	base := filepath.Base(path)
	return path != "." && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == binDir)
}

// countGoLines counts non-blank lines in Go files, either tests only or
// everything else.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		n, err := countLines(path)
		total += n
		return err
	})
	return total, err
}

func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}

// countDocWords counts words in the Markdown files of the project root.
func countDocWords(root string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
	}
	return total, nil
}
