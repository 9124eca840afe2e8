package statement

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

// Source serves transactions from statement exports on disk. Path is either a
// single file or a directory whose *.csv files are read in name order.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Fetch(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}

	start, end = transaction.Day(start), transaction.Day(end)

	var (
		out  []*transaction.Transaction
		seen = make(map[string]struct{})
	)

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := parseFile(name)
		if err != nil {
			return nil, err
		}

		slog.DebugContext(ctx, "read statement", "file", name, "profile", res.Profile, "charset", res.Charset, "rows", len(res.Transactions))

		for _, tx := range res.Transactions {
			if tx.Date.Before(start) || tx.Date.After(end) {
				continue
			}

			if _, dup := seen[tx.ID]; dup {
				continue
			}

			seen[tx.ID] = struct{}{}
			out = append(out, tx)
		}
	}

	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return out, nil
}

// ErrNotDirectory is returned by Save when the source reads a single file.
var ErrNotDirectory = errors.New("statement path is not a directory")

// Save validates an uploaded statement and stores it next to the others. The
// stored name is prefixed with now so uploads are read in arrival order.
func (s *Source) Save(name string, r io.Reader, now time.Time) (*Result, string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", transaction.ErrSourceUnavailable, err)
	}

	if !info.IsDir() {
		return nil, "", ErrNotDirectory
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("reading upload: %w", err)
	}

	res, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	dest := filepath.Join(s.path, now.UTC().Format("20060102T150405")+"_"+safeName(name))
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return nil, "", fmt.Errorf("writing %s: %w", filepath.Base(dest), err)
	}

	return res, filepath.Base(dest), nil
}

func safeName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, base)

	if base == "" || base == "." {
		base = "statement"
	}

	return base + ".csv"
}

func (s *Source) files() ([]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", transaction.ErrSourceUnavailable, err)
	}

	if !info.IsDir() {
		return []string{s.path}, nil
	}

	files, err := filepath.Glob(filepath.Join(s.path, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing statements: %w", err)
	}

	slices.Sort(files)

	return files, nil
}

func parseFile(name string) (*Result, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", transaction.ErrSourceUnavailable, err)
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(name), err)
	}

	return res, nil
}
