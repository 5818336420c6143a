package knowledgegraph

import "sort"

// clusterCommunities partitions the weighted graph with a single-level
// greedy modularity pass: every node starts in its own community, and each
// iteration every node (in sorted-id order, pinned for reproducibility)
// moves to the neighboring community whose modularity gain strictly beats
// staying put. The loop stops when no node moves or after maxIter
// passes, so cost is bounded on pathological inputs at the expense of
// global optimality.
//
// Returned ids are renumbered densely from 0 in order of first appearance
// over the sorted node list.
func clusterCommunities(ids []string, edges []Edge, maxIter int) map[string]int {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	community := make(map[string]int, len(sorted))
	for i, id := range sorted {
		community[id] = i
	}

	adj := make(map[string]map[string]float64, len(sorted))
	degree := make(map[string]float64, len(sorted))
	var total float64
	for _, e := range edges {
		if adj[e.Source] == nil {
			adj[e.Source] = make(map[string]float64)
		}
		if adj[e.Target] == nil {
			adj[e.Target] = make(map[string]float64)
		}
		adj[e.Source][e.Target] += e.Weight
		adj[e.Target][e.Source] += e.Weight
		degree[e.Source] += e.Weight
		degree[e.Target] += e.Weight
		total += e.Weight
	}

	// No qualifying edges at all: every node keeps its singleton, and the
	// modularity denominators below would divide by zero.
	if total > 0 {
		commDegree := make(map[int]float64, len(sorted))
		for id, c := range community {
			commDegree[c] = degree[id]
		}

		for iter := 0; iter < maxIter; iter++ {
			moved := false
			for _, id := range sorted {
				cur := community[id]

				weightTo := make(map[int]float64)
				for nb, w := range adj[id] {
					weightTo[community[nb]] += w
				}
				candidates := make([]int, 0, len(weightTo))
				for c := range weightTo {
					if c != cur {
						candidates = append(candidates, c)
					}
				}
				sort.Ints(candidates)

				// The node's own degree is removed from its community's
				// total when scoring the stay option, so a node does not
				// count itself as a neighbor to stay attached to.
				best := cur
				bestGain := weightTo[cur]/total -
					(commDegree[cur]-degree[id])*degree[id]/((2*total)*(2*total))
				for _, c := range candidates {
					gain := weightTo[c]/total -
						commDegree[c]*degree[id]/((2*total)*(2*total))
					// Strict comparison: ties keep the current community,
					// and among equal gains the first candidate wins.
					if gain > bestGain {
						best, bestGain = c, gain
					}
				}

				if best != cur {
					commDegree[cur] -= degree[id]
					commDegree[best] += degree[id]
					community[id] = best
					moved = true
				}
			}
			if !moved {
				break
			}
		}
	}

	// Dense renumbering for presentation stability.
	renumber := make(map[int]int)
	result := make(map[string]int, len(sorted))
	next := 0
	for _, id := range sorted {
		c := community[id]
		dense, ok := renumber[c]
		if !ok {
			dense = next
			renumber[c] = dense
			next++
		}
		result[id] = dense
	}
	return result
}
