package gene

import "github.com/agloe-labs/evocore/rng"

// MakeRandom builds a genome of n genes, each decoded from a uniformly
// random 32-bit word.
func MakeRandom(r *rng.Source, n int) Genome {
	g := make(Genome, n)
	for i := range g {
		g[i] = Unpack(r.NextUint32())
	}
	return g
}

// ApplyPointMutations flips a single uniformly chosen bit in each gene's
// packed form, independently, with probability rate.
func ApplyPointMutations(g Genome, rate float64, r *rng.Source) {
	for i := range g {
		if !r.Chance(rate) {
			continue
		}
		bit := r.NextInt(32)
		packed := Pack(g[i]) ^ (1 << uint(bit))
		g[i] = Unpack(packed)
	}
}

// ApplyInsertionDeletion performs at most one insertion or deletion on the
// whole genome: with probability rate, it either deletes a random gene (if
// len(g) > 1) with probability deletionRatio, or otherwise inserts a
// random gene at a random position (if len(g) < maxLen).
func ApplyInsertionDeletion(g Genome, rate, deletionRatio float64, maxLen int, r *rng.Source) Genome {
	if !r.Chance(rate) {
		return g
	}
	if r.Chance(deletionRatio) {
		if len(g) <= 1 {
			return g
		}
		idx := r.NextInt(len(g))
		out := make(Genome, 0, len(g)-1)
		out = append(out, g[:idx]...)
		out = append(out, g[idx+1:]...)
		return out
	}
	if len(g) >= maxLen {
		return g
	}
	idx := r.NextRange(0, len(g))
	newGene := Unpack(r.NextUint32())
	out := make(Genome, 0, len(g)+1)
	out = append(out, g[:idx]...)
	out = append(out, newGene)
	out = append(out, g[idx:]...)
	return out
}

// Crossover produces a child genome by single-point crossover of two
// parents. Cut points are chosen independently and uniformly within each
// parent; the child is p1's genes up to and including its cut point,
// followed by p2's genes after its cut point. An empty parent yields a
// clone of the other. Because p1's side always keeps at least one gene, the
// child of two non-empty parents is never empty; the one-gene random
// fallback below only guards that invariant.
func Crossover(p1, p2 Genome, r *rng.Source) Genome {
	if len(p1) == 0 {
		return Clone(p2)
	}
	if len(p2) == 0 {
		return Clone(p1)
	}

	c1 := r.NextInt(len(p1))
	c2 := r.NextInt(len(p2))

	child := make(Genome, 0, c1+1+len(p2)-c2-1)
	child = append(child, p1[:c1+1]...)
	child = append(child, p2[c2+1:]...)

	if len(child) == 0 {
		return MakeRandom(r, 1)
	}
	return child
}

// Similarity returns the Jaccard similarity of the sets of packed gene
// values in g1 and g2: |intersection| / |union|. Two empty genomes are
// defined as fully similar; one empty and one non-empty as fully
// dissimilar.
func Similarity(g1, g2 Genome) float64 {
	if len(g1) == 0 && len(g2) == 0 {
		return 1.0
	}
	if len(g1) == 0 || len(g2) == 0 {
		return 0.0
	}

	set1 := make(map[uint32]struct{}, len(g1))
	for _, g := range g1 {
		set1[Pack(g)] = struct{}{}
	}
	set2 := make(map[uint32]struct{}, len(g2))
	for _, g := range g2 {
		set2[Pack(g)] = struct{}{}
	}

	intersection := 0
	for w := range set1 {
		if _, ok := set2[w]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// Diversity returns the mean genetic distance (1 - similarity) over k
// sampled distinct index pairs drawn from pop. Returns 0 if pop has fewer
// than two members.
func Diversity(pop []Genome, k int, r *rng.Source) float64 {
	n := len(pop)
	if n < 2 {
		return 0
	}

	total := 0.0
	for s := 0; s < k; s++ {
		i := r.NextInt(n)
		j := r.NextInt(n)
		for j == i {
			j = r.NextInt(n)
		}
		total += 1.0 - Similarity(pop[i], pop[j])
	}
	return total / float64(k)
}
