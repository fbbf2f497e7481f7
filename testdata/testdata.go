// Package testdata provides access to shared sample logs and config for testing
package testdata

import (
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
)

var inputExtPattern = regexp.MustCompile(`-input\.log$`)

var absoluteDirPath string

func init() {
	_, thisFile, _, _ := runtime.Caller(0)
	absoluteDirPath = filepath.Dir(thisFile)
}

// GetConfigPath returns the path of the sample encode config
func GetConfigPath() string {
	return filepath.Join(absoluteDirPath, "config_sample.yml")
}

// ListInputFiles lists sample input files under "encode" matching the pattern, e.g. "*" for all
func ListInputFiles(t *testing.T, pattern string) []string {
	fullPattern := filepath.Join(absoluteDirPath, "encode", pattern+"-input.log")

	inFiles, globErr := filepath.Glob(fullPattern)
	if globErr != nil {
		t.Fatalf("failed to scan test files at path %s: %v", fullPattern, globErr)
	}
	if len(inFiles) == 0 {
		t.Fatalf("failed to find test files at path %s: no match", fullPattern)
	}
	return inFiles
}

// GetOutputFilename returns the path of expected output for the given sample input
func GetOutputFilename(t *testing.T, fn string) string {
	outFn := inputExtPattern.ReplaceAllString(fn, "-output.log")
	if outFn == fn {
		t.Fatalf("invalid input filename %s", fn)
	}
	return outFn
}
