package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// generatedHeader is the first line of every file the generator owns.
var generatedHeader = []byte("// Code generated by typesynth. DO NOT EDIT.")

// ErrNotGenerated is returned when a write would replace a hand-written file.
var ErrNotGenerated = errors.New("refusing to overwrite a file not generated by typesynth")

// WriteResult reports what happened to one file.
type WriteResult struct {
	Path    string
	Changed bool
	// Err is set when this file could not be written.
	Err error
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Files whose content is
// unchanged are left alone so their modification time is preserved.
//
// A file that cannot be written does not stop the others: there is one
// result per file, in order, and the returned error joins every failure.
func WriteFiles(files []GeneratedFile, outputDir string) ([]WriteResult, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	results := make([]WriteResult, 0, len(files))

	var errs []error

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		changed, err := writeFile(outputPath, file.Content)
		if err != nil {
			err = fmt.Errorf("writing file %s: %w", file.Filename, err)
			errs = append(errs, err)
		}

		results = append(results, WriteResult{Path: outputPath, Changed: changed, Err: err})
	}

	return results, errors.Join(errs...)
}

func writeFile(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return false, err
	case bytes.Equal(existing, content):
		return false, nil
	case !bytes.HasPrefix(existing, generatedHeader):
		return false, ErrNotGenerated
	}

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return false, err
	}

	return true, nil
}
