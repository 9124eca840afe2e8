package exclusion

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

// DefaultOwner scopes exclusions when a deployment tracks a single ledger.
const DefaultOwner = "default"

var ErrMissingID = errors.New("transaction id missing")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=exclusion
type Repository interface {
	// Add records id as excluded and reports whether it was newly added.
	Add(ctx context.Context, owner, id string) (bool, error)
	// Remove deletes id and reports whether it was present.
	Remove(ctx context.Context, owner, id string) (bool, error)
	// Clear deletes every exclusion of owner and returns how many there were.
	Clear(ctx context.Context, owner string) (int, error)
	List(ctx context.Context, owner string) ([]string, error)
	Contains(ctx context.Context, owner, id string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Exclude marks id as manually excluded. Excluding an id twice is not an error;
// the second call reports false.
func (s *Service) Exclude(ctx context.Context, owner, id string) (bool, error) {
	id, err := normalizeID(id)
	if err != nil {
		return false, err
	}

	added, err := s.repo.Add(ctx, ownerOrDefault(owner), id)
	if err != nil {
		return false, fmt.Errorf("excluding %s: %w", id, err)
	}

	return added, nil
}

// Include removes a manual exclusion. It reports false when id was not excluded.
func (s *Service) Include(ctx context.Context, owner, id string) (bool, error) {
	id, err := normalizeID(id)
	if err != nil {
		return false, err
	}

	removed, err := s.repo.Remove(ctx, ownerOrDefault(owner), id)
	if err != nil {
		return false, fmt.Errorf("including %s: %w", id, err)
	}

	return removed, nil
}

func (s *Service) Clear(ctx context.Context, owner string) (int, error) {
	n, err := s.repo.Clear(ctx, ownerOrDefault(owner))
	if err != nil {
		return 0, fmt.Errorf("clearing exclusions: %w", err)
	}

	return n, nil
}

// List returns the manually excluded ids in lexical order.
func (s *Service) List(ctx context.Context, owner string) ([]string, error) {
	ids, err := s.repo.List(ctx, ownerOrDefault(owner))
	if err != nil {
		return nil, fmt.Errorf("listing exclusions: %w", err)
	}

	slices.Sort(ids)

	return ids, nil
}

func (s *Service) IsManuallyExcluded(ctx context.Context, owner, id string) (bool, error) {
	id, err := normalizeID(id)
	if err != nil {
		return false, err
	}

	ok, err := s.repo.Contains(ctx, ownerOrDefault(owner), id)
	if err != nil {
		return false, fmt.Errorf("checking exclusion %s: %w", id, err)
	}

	return ok, nil
}

// Manual returns the manual exclusions of owner as a set.
func (s *Service) Manual(ctx context.Context, owner string) (ledger.IDSet, error) {
	ids, err := s.repo.List(ctx, ownerOrDefault(owner))
	if err != nil {
		return nil, fmt.Errorf("loading exclusions: %w", err)
	}

	return ledger.NewIDSet(ids...), nil
}

// IsCombinedExcluded reports whether id is excluded manually or automatically.
func IsCombinedExcluded(id string, manual, auto ledger.IDSet) bool {
	return manual.Has(id) || auto.Has(id)
}

// ShortID is the prefix of id used in user-facing messages.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}

	return id[:8]
}

func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}

	return id, nil
}

func ownerOrDefault(owner string) string {
	if owner == "" {
		return DefaultOwner
	}

	return owner
}
