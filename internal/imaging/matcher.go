package imaging

import "math/bits"

// DMatch is a correspondence between a query and a train descriptor.
type DMatch struct {
	QueryIdx int
	TrainIdx int
	Distance int
}

// Hamming returns the number of differing bits between a and b.
func Hamming(a, b Descriptor) int {
	return bits.OnesCount64(a[0]^b[0]) + bits.OnesCount64(a[1]^b[1]) +
		bits.OnesCount64(a[2]^b[2]) + bits.OnesCount64(a[3]^b[3])
}

// MatchCrossCheck pairs descriptors that are each other's nearest neighbour
// under Hamming distance. Ties resolve to the lowest index. Matches are
// returned in query order.
func MatchCrossCheck(query, train []Descriptor) []DMatch {
	if len(query) == 0 || len(train) == 0 {
		return nil
	}
	nq, nt := len(query), len(train)
	dist := make([]uint16, nq*nt)
	for i, q := range query {
		for j, t := range train {
			dist[i*nt+j] = uint16(Hamming(q, t))
		}
	}

	bestTrain := make([]int, nq)
	for i := range nq {
		row := dist[i*nt : (i+1)*nt]
		best := 0
		for j := 1; j < nt; j++ {
			if row[j] < row[best] {
				best = j
			}
		}
		bestTrain[i] = best
	}
	bestQuery := make([]int, nt)
	for j := range nt {
		best := 0
		for i := 1; i < nq; i++ {
			if dist[i*nt+j] < dist[best*nt+j] {
				best = i
			}
		}
		bestQuery[j] = best
	}

	var matches []DMatch
	for i, j := range bestTrain {
		if bestQuery[j] == i {
			matches = append(matches, DMatch{QueryIdx: i, TrainIdx: j, Distance: int(dist[i*nt+j])})
		}
	}
	return matches
}

// CountGood returns the number of matches strictly closer than maxDistance.
func CountGood(matches []DMatch, maxDistance int) int {
	good := 0
	for _, m := range matches {
		if m.Distance < maxDistance {
			good++
		}
	}
	return good
}
