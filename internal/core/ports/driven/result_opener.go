package driven

import "context"

// ResultOpener hands a result's path to the host environment
type ResultOpener interface {
	// Open launches the file or application with its default handler
	Open(ctx context.Context, path string) error

	// Reveal shows the path selected in its containing folder
	Reveal(ctx context.Context, path string) error

	// Preview shows a quick-look preview of the path
	Preview(ctx context.Context, path string) error
}
