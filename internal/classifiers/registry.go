package classifiers

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ClassifierRegistry = (*Registry)(nil)

// Registry implements ClassifierRegistry with priority-based selection.
// When multiple classifiers match an entry, the highest priority one is used.
type Registry struct {
	mu          sync.RWMutex
	classifiers []driven.Classifier
}

// NewRegistry creates a new classifier registry.
func NewRegistry() *Registry {
	return &Registry{
		classifiers: make([]driven.Classifier, 0),
	}
}

// Register registers a classifier.
func (r *Registry) Register(classifier driven.Classifier) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.classifiers = append(r.classifiers, classifier)
}

// Get retrieves the best-matching classifier for an entry.
// Returns nil if no classifier matches.
func (r *Registry) Get(name string, isDir bool) driven.Classifier {
	matches := r.GetAll(name, isDir)
	if len(matches) == 0 {
		return nil
	}
	return matches[0] // Already sorted by priority (highest first)
}

// GetAll retrieves all classifiers matching an entry, sorted by priority (highest first).
// Registration order breaks ties.
func (r *Registry) GetAll(name string, isDir bool) []driven.Classifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []driven.Classifier

	ext := strings.ToLower(filepath.Ext(name))
	for _, c := range r.classifiers {
		if c.Directories() == isDir && matchesExtension(c.Extensions(), ext) {
			matches = append(matches, c)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})

	return matches
}

// Classify returns the type of the best-matching classifier.
func (r *Registry) Classify(name string, isDir bool) domain.ResultType {
	if c := r.Get(name, isDir); c != nil {
		return c.Type()
	}
	if isDir {
		return domain.ResultTypeFolder
	}
	return domain.ResultTypeFile
}

// List returns all registered extensions.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	extSet := make(map[string]struct{})
	for _, c := range r.classifiers {
		for _, e := range c.Extensions() {
			extSet[e] = struct{}{}
		}
	}

	exts := make([]string, 0, len(extSet))
	for e := range extSet {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// matchesExtension checks if any supported extension matches ext.
// "*" matches anything, including entries without an extension.
func matchesExtension(supported []string, ext string) bool {
	for _, s := range supported {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "*" || (s != "" && s == ext) {
			return true
		}
	}
	return false
}

// DefaultRegistry creates a registry with the built-in classifiers.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&ExtensionClassifier{ResultType: domain.ResultTypeFile, Exts: []string{"*"}, Prio: 1})
	r.Register(&ExtensionClassifier{ResultType: domain.ResultTypeFolder, Exts: []string{"*"}, Dirs: true, Prio: 1})
	r.Register(&ExtensionClassifier{ResultType: domain.ResultTypeApplication, Exts: []string{".app"}, Dirs: true, Prio: 50})
	r.Register(&ExtensionClassifier{ResultType: domain.ResultTypeApplication, Exts: []string{".exe", ".appimage"}, Prio: 50})
	r.Register(&ExtensionClassifier{ResultType: domain.ResultTypeCode, Exts: codeExtensions, Prio: 50})
	r.Register(&ExtensionClassifier{ResultType: domain.ResultTypeDocument, Exts: documentExtensions, Prio: 50})
	r.Register(&ExtensionClassifier{ResultType: domain.ResultTypeImage, Exts: imageExtensions, Prio: 50})
	r.Register(&ExtensionClassifier{ResultType: domain.ResultTypePDF, Exts: []string{".pdf"}, Prio: 60})

	return r
}

var codeExtensions = []string{
	".go", ".swift", ".rs", ".c", ".h", ".cc", ".cpp", ".hpp", ".m", ".mm",
	".java", ".kt", ".py", ".rb", ".js", ".jsx", ".ts", ".tsx", ".sh",
	".json", ".yaml", ".yml", ".toml", ".sql", ".html", ".css",
}

var documentExtensions = []string{
	".md", ".markdown", ".txt", ".rtf", ".doc", ".docx", ".pages",
	".odt", ".csv", ".xls", ".xlsx", ".numbers", ".key", ".ppt", ".pptx",
}

var imageExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".heic", ".webp", ".tiff", ".bmp", ".svg",
}

// ExtensionClassifier is a table-driven classifier.
type ExtensionClassifier struct {
	ResultType domain.ResultType
	Exts       []string
	Dirs       bool
	Prio       int
}

func (c *ExtensionClassifier) Type() domain.ResultType { return c.ResultType }
func (c *ExtensionClassifier) Extensions() []string    { return c.Exts }
func (c *ExtensionClassifier) Directories() bool       { return c.Dirs }
func (c *ExtensionClassifier) Priority() int           { return c.Prio }
