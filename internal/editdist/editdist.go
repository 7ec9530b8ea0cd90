// Package editdist aligns an attested form against an expected form using
// classic Levenshtein distance with unit costs, and reconstructs one
// optimal edit path so deviations can be localized per character.
//
// All positions are rune indices; accented characters count as one.
package editdist

// OpKind is the type of a single edit operation.
type OpKind int

const (
	Substitute OpKind = iota
	Insert
	Delete
)

// Op is one edit operation of an optimal path. Expected and Attested are
// the rune indices the operation applies at; for an insertion Expected is
// the gap position in the expected form, for a deletion Attested is the
// gap position in the attested form.
type Op struct {
	Kind     OpKind
	Expected int
	Attested int
}

// Mask aligns attested against expected and returns the edit cost plus a
// per-rune deviation mask over attested: true where the path assigns a
// substitution or insertion, false on exact matches. Deletions live only
// on the expected side and contribute no mask entry. len(mask) always
// equals the rune length of attested, and cost is 0 iff the strings are
// equal (then the mask is all false).
func Mask(attested, expected string) (int, []bool) {
	cost, mask, _ := align(attested, expected, false)
	return cost, mask
}

// Ops returns the edit cost and the operations of one optimal path in
// left-to-right order. Matches carry no operation.
func Ops(attested, expected string) (int, []Op) {
	cost, _, ops := align(attested, expected, true)
	return cost, ops
}

// BestMask aligns the attested form against each variant in order and
// keeps the cost and mask of the cheapest alignment; the first variant
// achieving the minimum wins and an exact match short-circuits. ok is
// false when variants is empty (no prediction available).
func BestMask(attested string, variants []string) (cost int, mask []bool, ok bool) {
	if len(variants) == 0 {
		return 0, nil, false
	}
	cost = -1
	for _, expected := range variants {
		c, m := Mask(attested, expected)
		if cost < 0 || c < cost {
			cost = c
			mask = m
			if c == 0 {
				break
			}
		}
	}
	return cost, mask, true
}

// align fills the full distance matrix between expected (pattern) and
// attested (text), then walks one optimal path back from the end. Ties
// prefer the diagonal, then insertion, then deletion, which pins the
// path deterministically.
func align(attested, expected string, wantOps bool) (int, []bool, []Op) {
	a := []rune(attested)
	e := []rune(expected)
	m, n := len(e), len(a)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			sub := d[i-1][j-1]
			if e[i-1] != a[j-1] {
				sub++
			}
			d[i][j] = min(sub, d[i][j-1]+1, d[i-1][j]+1)
		}
	}

	mask := make([]bool, n)
	var ops []Op
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && e[i-1] == a[j-1] && d[i][j] == d[i-1][j-1]:
			i, j = i-1, j-1
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+1:
			mask[j-1] = true
			if wantOps {
				ops = append(ops, Op{Kind: Substitute, Expected: i - 1, Attested: j - 1})
			}
			i, j = i-1, j-1
		case j > 0 && d[i][j] == d[i][j-1]+1:
			mask[j-1] = true
			if wantOps {
				ops = append(ops, Op{Kind: Insert, Expected: i, Attested: j - 1})
			}
			j--
		default:
			if wantOps {
				ops = append(ops, Op{Kind: Delete, Expected: i - 1, Attested: j})
			}
			i--
		}
	}

	// The walk collected operations end-first.
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}

	return d[m][n], mask, ops
}
