package driven

import "github.com/custodia-labs/deep-core/internal/core/domain"

// Classifier assigns a ResultType to filesystem entries by extension.
type Classifier interface {
	// Type returns the result type this classifier assigns.
	Type() domain.ResultType

	// Extensions returns lowercase extensions including the dot, e.g. ".go".
	// "*" matches any entry of the right kind.
	Extensions() []string

	// Directories reports whether this classifier handles directories
	// rather than files.
	Directories() bool

	// Priority returns the classifier priority (higher = more specific).
	// Priority ranges:
	//   50-100: Extension-specific (code, images, bundles)
	//   1-9:    Fallback (plain file, plain folder)
	Priority() int
}

// ClassifierRegistry manages classifiers.
// When multiple classifiers match an entry, the highest priority one is used.
type ClassifierRegistry interface {
	// Get retrieves the best-matching classifier for an entry name.
	// Returns nil if nothing matches.
	Get(name string, isDir bool) Classifier

	// Classify returns the best-matching type, falling back to
	// folder for directories and file for everything else.
	Classify(name string, isDir bool) domain.ResultType

	// Register registers a classifier.
	Register(classifier Classifier)

	// List returns all registered extensions.
	List() []string
}
