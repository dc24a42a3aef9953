package store

import (
	"context"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
)

// Resolve looks a tournament up by id, falling back to a fuzzy name match.
// An exact (case-insensitive) name wins; otherwise the closest fuzzy match
// is returned. No match yields NOT_FOUND.
func Resolve(ctx context.Context, s Store, idOrName string) (bracket.Tournament, error) {
	if errors.ValidateTournamentID(idOrName) == nil {
		t, err := s.Get(ctx, idOrName)
		if err == nil || !errors.Is(err, errors.ErrCodeNotFound) {
			return t, err
		}
	}
	matches, err := FindByName(ctx, s, idOrName)
	if err != nil {
		return bracket.Tournament{}, err
	}
	if len(matches) == 0 {
		return bracket.Tournament{}, errors.New(errors.ErrCodeNotFound, "no tournament matches %q", idOrName)
	}
	return matches[0], nil
}

// FindByName returns tournaments whose name fuzzily contains query, best
// match first. Matching ignores case and diacritics.
func FindByName(ctx context.Context, s Store, query string) ([]bracket.Tournament, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]bracket.Tournament, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, all[r.OriginalIndex])
	}
	return out, nil
}
