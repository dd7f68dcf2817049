package text

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/DaanHessen/predquest/internal/engine"
	"github.com/pkg/errors"
)

// ErrNoGuide means the guide directory has no page for the current cell.
var ErrNoGuide = errors.New("no guide page")

// guideNarrator serves facilitator-written markdown pages named after cells
// (A.md, 1.md, start.md). Pair it with WithFallback.
type guideNarrator struct {
	dir string
}

func NewGuideNarrator(dir string) (Narrator, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, "guide dir")
	}
	if !st.IsDir() {
		return nil, errors.Errorf("guide path %s is not a directory", dir)
	}
	return &guideNarrator{dir: dir}, nil
}

func (g *guideNarrator) page(name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(g.dir, name+".md"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoGuide
		}
		return "", errors.Wrapf(err, "guide page %s", name)
	}
	return strings.TrimSpace(string(raw)) + "\n", nil
}

func (g *guideNarrator) Activity(ctx context.Context, snap engine.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := snap.Cell
	if snap.Kind == engine.ActivityNone {
		name = "start"
	}
	return g.page(name)
}

func (g *guideNarrator) Recap(ctx context.Context, snap engine.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.page("recap")
}
