package stream

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/klauspost/compress/gzip"
)

const globMetaChars = "*?[{"

// ListInputFiles lists regular files matching the pattern, sorted by path
//
// The pattern uses '/' as separator: "*" matches within one path segment and "**" matches across segments.
// A pattern without meta characters selects the file itself, or the first level files of a directory.
func ListInputFiles(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	metaPos := strings.IndexAny(pattern, globMetaChars)
	if metaPos == -1 {
		return listPlainPath(pattern)
	}

	// WalkDir yields cleaned paths, e.g. "logs/a.log" for root "./logs"
	pattern = path.Clean(pattern)
	metaPos = strings.IndexAny(pattern, globMetaChars)
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid input pattern '%s': %w", pattern, err)
	}
	root := "."
	if slash := strings.LastIndexByte(pattern[:metaPos], '/'); slash != -1 {
		root = pattern[:slash]
		if len(root) == 0 {
			root = "/"
		}
	}

	var pathList []string
	werr := filepath.WalkDir(filepath.FromSlash(root), func(walkedPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}
		if matcher.Match(filepath.ToSlash(walkedPath)) {
			pathList = append(pathList, walkedPath)
		}
		return nil
	})
	if werr != nil {
		return nil, werr
	}
	sort.Strings(pathList)
	return pathList, nil
}

func listPlainPath(path string) ([]string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return []string{path}, nil
	}
	fileList, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	pathList := make([]string, 0, len(fileList))
	for _, file := range fileList {
		if file.Type().IsRegular() {
			pathList = append(pathList, filepath.Join(path, file.Name()))
		}
	}
	sort.Strings(pathList)
	return pathList, nil
}

// OpenInput opens an input file for reading, decompressing ".gz" files transparently
func OpenInput(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return file, nil
	}
	gzReader, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to open gzip file '%s': %w", path, err)
	}
	return &gzipFile{Reader: gzReader, file: file}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (f *gzipFile) Close() error {
	gerr := f.Reader.Close()
	ferr := f.file.Close()
	if gerr != nil {
		return gerr
	}
	return ferr
}
