package lang

import (
	"bufio"
	"io"
	"iter"
	"path/filepath"
	"strings"
)

// CommandLine is the synthetic path of text given on the command line
// rather than read from a file. Relative includes cannot be resolved from it.
const CommandLine = "<command-line>"

// Annotations attached to top-level nodes of the include hierarchy.
const (
	AnnotationFile    = "from cmd line"
	AnnotationPrepend = "prepend data"
	AnnotationAppend  = "append data"
	AnnotationProcess = "config that invoked subprocess"
)

// IncludeTree is one node of the include hierarchy: a source document and,
// in discovery order, the documents it included.
type IncludeTree struct {
	Path       string         `json:"path"                 yaml:"path"`
	Annotation string         `json:"annotation,omitempty" yaml:"annotation,omitempty"`
	Children   []*IncludeTree `json:"children,omitempty"   yaml:"children,omitempty"`
}

func (t *IncludeTree) add(path string) *IncludeTree {
	child := &IncludeTree{Path: path}
	t.Children = append(t.Children, child)

	return child
}

// Walk yields every node of the forest depth-first, in discovery order,
// together with its nesting level.
func Walk(forest []*IncludeTree) iter.Seq2[int, *IncludeTree] {
	return func(yield func(int, *IncludeTree) bool) {
		var walk func(level int, nodes []*IncludeTree) bool

		walk = func(level int, nodes []*IncludeTree) bool {
			for _, node := range nodes {
				if !yield(level, node) || !walk(level+1, node.Children) {
					return false
				}
			}

			return true
		}

		walk(0, forest)
	}
}

// Dependencies flattens the forest depth-first into the list of source
// files, relative to baseDir. Command-line text is not a dependency.
func Dependencies(forest []*IncludeTree, baseDir string) []string {
	var deps []string

	for _, node := range Walk(forest) {
		if node.Path == CommandLine {
			continue
		}

		deps = append(deps, relativePath(node.Path, baseDir))
	}

	return deps
}

// WriteHierarchy renders the forest as comment lines, one per node:
//
//	# * top.conf ( from cmd line )
//	#   * nested.conf
//
// Command-line text is shown by its annotation alone.
func WriteHierarchy(w io.Writer, forest []*IncludeTree, baseDir string) error {
	bw := bufio.NewWriter(w)

	for level, node := range Walk(forest) {
		bw.WriteString("#" + strings.Repeat("  ", level) + " * ")

		switch {
		case node.Path == CommandLine:
			bw.WriteString(node.Annotation)
		case node.Annotation != "":
			bw.WriteString(relativePath(node.Path, baseDir))
			bw.WriteString(" ( " + node.Annotation + " )")
		default:
			bw.WriteString(relativePath(node.Path, baseDir))
		}

		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// relativePath expresses path relative to baseDir, falling back to path
// itself when no relative form exists.
func relativePath(path, baseDir string) string {
	if baseDir == "" || path == CommandLine {
		return path
	}

	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return path
	}

	return rel
}
