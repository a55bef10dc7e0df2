package opener

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

type recorder struct {
	commands []string
	err      error
}

func (r *recorder) run(ctx context.Context, name string, args ...string) error {
	r.commands = append(r.commands, strings.Join(append([]string{name}, args...), " "))
	return r.err
}

func TestOpener_Darwin(t *testing.T) {
	rec := &recorder{}
	o := New(Config{GOOS: "darwin", Runner: rec.run})
	ctx := context.Background()

	require.NoError(t, o.Open(ctx, "/Users/me/Notes.md"))
	require.NoError(t, o.Reveal(ctx, "/Users/me/Notes.md"))
	require.NoError(t, o.Preview(ctx, "/Users/me/Notes.md"))

	assert.Equal(t, []string{
		"open /Users/me/Notes.md",
		"open -R /Users/me/Notes.md",
		"qlmanage -p /Users/me/Notes.md",
	}, rec.commands)
}

func TestOpener_Linux(t *testing.T) {
	rec := &recorder{}
	o := New(Config{GOOS: "linux", Runner: rec.run})
	ctx := context.Background()

	require.NoError(t, o.Open(ctx, "/home/me/Notes.md"))
	require.NoError(t, o.Reveal(ctx, "/home/me/Notes.md"))
	require.NoError(t, o.Preview(ctx, "/home/me/Notes.md"))

	assert.Equal(t, []string{
		"xdg-open /home/me/Notes.md",
		"xdg-open /home/me",
		"xdg-open /home/me/Notes.md",
	}, rec.commands)
}

func TestOpener_Windows(t *testing.T) {
	rec := &recorder{}
	o := New(Config{GOOS: "windows", Runner: rec.run})

	require.NoError(t, o.Reveal(context.Background(), `C:\Notes.md`))
	assert.Equal(t, []string{`explorer /select,C:\Notes.md`}, rec.commands)
}

func TestOpener_Errors(t *testing.T) {
	rec := &recorder{err: errors.New("exit status 1")}
	o := New(Config{GOOS: "darwin", Runner: rec.run})

	err := o.Open(context.Background(), "/x")
	assert.ErrorContains(t, err, "run open")

	err = o.Open(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, rec.commands, 1, "empty paths never reach the runner")
}
