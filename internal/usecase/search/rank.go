package search

import (
	"sort"
	"strings"

	"github.com/pranavi39/pawfect/internal/domain/product"
	"github.com/pranavi39/pawfect/internal/domain/search/result"
	"github.com/pranavi39/pawfect/internal/usecase/index"
	"github.com/pranavi39/pawfect/internal/vsm"
)

// rank runs one search against a snapshot and also reports the size of the
// category subset:
//  1. restrict to the category (empty subset -> empty result)
//  2. project the query through the fitted vocabulary
//  3. cosine-score the subset
//  4. keep products whose description contains the query, ignoring case
//  5. stable sort by score descending, so ties keep catalog order
//
// The substring pass is part of the contract: a product with a positive score
// is still dropped when its description lacks the literal query text.
func rank(snap *index.Snapshot, category product.Category, query string) ([]result.Result, int) {
	cat := snap.Catalog()

	rows := cat.InCategory(category)
	if len(rows) == 0 {
		return []result.Result{}, 0
	}

	qv := vsm.Transform(snap.Vocabulary(), query)
	scored := vsm.Score(qv, snap.Matrix(), rows)

	needle := strings.ToLower(query)
	results := make([]result.Result, 0, len(scored))
	for _, sc := range scored {
		p := cat.At(sc.Row)
		if !strings.Contains(strings.ToLower(p.Description()), needle) {
			continue
		}
		results = append(results, result.New(p, sc.Score))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	return results, len(rows)
}
