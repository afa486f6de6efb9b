package scanner

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// The loop must build without cgo; OpenCV stays in gocvcam.
func TestPackageDoesNotImportOpenCV(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	fset := token.NewFileSet()
	for _, name := range files {
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatal(err)
		}
		for _, imp := range f.Imports {
			if strings.Contains(imp.Path.Value, "gocv.io") {
				t.Errorf("%s imports %s", name, imp.Path.Value)
			}
		}
	}
}
