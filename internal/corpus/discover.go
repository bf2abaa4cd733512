package corpus

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	ContentFileName = "docContent.md"
	TOCFileName     = "docTOC.md"
)

// DiscoverDocSets scans baseDir for entries whose name contains "@",
// treating each as a {name}@{version} doc-set directory.
func DiscoverDocSets(baseDir string) ([]DocSet, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, err
	}
	var sets []DocSet
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if strings.Contains(e.Name(), "@") {
			sets = append(sets, DocSet{Name: e.Name(), Dir: filepath.Join(baseDir, e.Name())})
		}
	}
	return sets, nil
}

// DiscoverPages walks docSetDir and returns one Page per directory that
// contains a docContent.md file (every Page has at least that file;
// docTOC.md is optional).
func DiscoverPages(docSet DocSet) ([]Page, error) {
	var pages []Page
	err := filepath.Walk(docSet.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || info.Name() != ContentFileName {
			return nil
		}
		dir := filepath.Dir(path)
		tocPath := filepath.Join(dir, TOCFileName)
		hasTOC := fileExists(tocPath)

		title, terr := ExtractPageTitle(path)
		if terr != nil || title == "" {
			title = filepath.Base(dir)
		}
		pages = append(pages, Page{
			DocSet:      docSet.Name,
			Title:       title,
			Dir:         dir,
			ContentPath: path,
			TOCPath:     tocPath,
			HasTOC:      hasTOC,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// DiscoverTOCPaths recursively finds every docTOC.md under docSetDir,
// preserving filesystem walk order (used as the tie-break on equal BM25
// score).
func DiscoverTOCPaths(docSet DocSet) ([]string, error) {
	var paths []string
	err := filepath.Walk(docSet.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && info.Name() == TOCFileName {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
