package playrho

import (
	"sort"
)

type BroadPhaseAddPairCallback func(keyA ProxyKey, keyB ProxyKey)

type Pair struct {
	ProxyIdA int
	ProxyIdB int
}

const e_nullProxy = -1

/// The broad-phase wraps the dynamic tree with a move buffer and pair
/// management: proxies that moved since the last update get re-queried
/// against the tree, producing the candidate pairs the contact manager
/// turns into contacts.
type BroadPhase struct {
	M_tree DynamicTree

	M_proxyCount int

	M_moveBuffer   []int
	M_moveCapacity int
	M_moveCount    int

	M_pairBuffer   []Pair
	M_pairCapacity int
	M_pairCount    int

	M_queryProxyId int
}

type pairByLessThan []Pair

func (a pairByLessThan) Len() int      { return len(a) }
func (a pairByLessThan) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a pairByLessThan) Less(i, j int) bool {
	return PairLessThan(a[i], a[j])
}

/// This is used to sort pairs.
func PairLessThan(pair1 Pair, pair2 Pair) bool {
	if pair1.ProxyIdA < pair2.ProxyIdA {
		return true
	}

	if pair1.ProxyIdA == pair2.ProxyIdA {
		return pair1.ProxyIdB < pair2.ProxyIdB
	}

	return false
}

func (bp BroadPhase) GetKey(proxyId int) ProxyKey {
	return bp.M_tree.GetKey(proxyId)
}

func (bp BroadPhase) TestOverlap(proxyIdA int, proxyIdB int) bool {
	return TestOverlapBoundingBoxes(
		bp.M_tree.GetFatAABB(proxyIdA),
		bp.M_tree.GetFatAABB(proxyIdB),
	)
}

func (bp BroadPhase) GetFatAABB(proxyId int) AABB {
	return bp.M_tree.GetFatAABB(proxyId)
}

func (bp BroadPhase) GetProxyCount() int {
	return bp.M_proxyCount
}

func (bp BroadPhase) GetTreeHeight() int {
	return bp.M_tree.GetHeight()
}

func (bp BroadPhase) GetTreeBalance() int {
	return bp.M_tree.GetMaxBalance()
}

func (bp BroadPhase) GetTreeQuality() float64 {
	return bp.M_tree.GetAreaRatio()
}

/// Update the pairs. This results in pair callbacks. This can only add
/// pairs. Pairs are sorted before reporting so duplicates collapse and the
/// callback sees each candidate pair exactly once, in a stable order.
func (bp *BroadPhase) UpdatePairs(addPairCallback BroadPhaseAddPairCallback) {
	// Reset pair buffer
	bp.M_pairCount = 0

	// Perform tree queries for all moving proxies.
	for i := 0; i < bp.M_moveCount; i++ {
		bp.M_queryProxyId = bp.M_moveBuffer[i]
		if bp.M_queryProxyId == e_nullProxy {
			continue
		}

		// We have to query the tree with the fat AABB so that
		// we don't fail to create a pair that may touch later.
		fatAABB := bp.M_tree.GetFatAABB(bp.M_queryProxyId)

		// Query tree, create pairs and add them pair buffer.
		bp.M_tree.Query(bp.queryCallback, fatAABB)
	}

	// Reset move buffer
	bp.M_moveCount = 0

	// Sort the pair buffer to expose duplicates.
	sort.Sort(pairByLessThan(bp.M_pairBuffer[:bp.M_pairCount]))

	// Send the pairs back to the client.
	i := 0
	for i < bp.M_pairCount {
		primaryPair := bp.M_pairBuffer[i]
		keyA := bp.M_tree.GetKey(primaryPair.ProxyIdA)
		keyB := bp.M_tree.GetKey(primaryPair.ProxyIdB)

		addPairCallback(keyA, keyB)
		i++

		// Skip any duplicate pairs.
		for i < bp.M_pairCount {
			pair := bp.M_pairBuffer[i]
			if pair.ProxyIdA != primaryPair.ProxyIdA || pair.ProxyIdB != primaryPair.ProxyIdB {
				break
			}
			i++
		}
	}
}

func MakeBroadPhase() BroadPhase {
	pairCapacity := 16
	moveCapacity := 16

	tree := MakeDynamicTree()

	return BroadPhase{
		M_tree:       tree,
		M_proxyCount: 0,

		M_pairCapacity: pairCapacity,
		M_pairCount:    0,
		M_pairBuffer:   make([]Pair, pairCapacity),

		M_moveCapacity: moveCapacity,
		M_moveCount:    0,
		M_moveBuffer:   make([]int, moveCapacity),
	}
}

/// Create a proxy with an initial AABB. Pairs are not reported until
/// UpdatePairs is called.
func (bp *BroadPhase) CreateProxy(aabb AABB, key ProxyKey) int {
	proxyId := bp.M_tree.CreateProxy(aabb, key)
	bp.M_proxyCount++
	bp.BufferMove(proxyId)
	return proxyId
}

func (bp *BroadPhase) DestroyProxy(proxyId int) {
	bp.UnBufferMove(proxyId)
	bp.M_proxyCount--
	bp.M_tree.DestroyProxy(proxyId)
}

/// Call MoveProxy as many times as you like, then when you are done call
/// UpdatePairs to finalize the proxy pairs (for your time step).
func (bp *BroadPhase) MoveProxy(proxyId int, aabb AABB, displacement Vec2) {
	buffer := bp.M_tree.MoveProxy(proxyId, aabb, displacement)
	if buffer {
		bp.BufferMove(proxyId)
	}
}

/// Call to trigger a re-processing of its pairs on the next call to
/// UpdatePairs.
func (bp *BroadPhase) TouchProxy(proxyId int) {
	bp.BufferMove(proxyId)
}

func (bp *BroadPhase) BufferMove(proxyId int) {
	if bp.M_moveCount == bp.M_moveCapacity {
		bp.M_moveBuffer = append(bp.M_moveBuffer, make([]int, bp.M_moveCapacity)...)
		bp.M_moveCapacity *= 2
	}

	bp.M_moveBuffer[bp.M_moveCount] = proxyId
	bp.M_moveCount++
}

func (bp *BroadPhase) UnBufferMove(proxyId int) {
	for i := 0; i < bp.M_moveCount; i++ {
		if bp.M_moveBuffer[i] == proxyId {
			bp.M_moveBuffer[i] = e_nullProxy
		}
	}
}

// This is called from DynamicTree.Query when we are gathering pairs.
func (bp *BroadPhase) queryCallback(proxyId int) bool {
	// A proxy cannot form a pair with itself.
	if proxyId == bp.M_queryProxyId {
		return true
	}

	// Grow the pair buffer as needed.
	if bp.M_pairCount == bp.M_pairCapacity {
		bp.M_pairBuffer = append(bp.M_pairBuffer, make([]Pair, bp.M_pairCapacity)...)
		bp.M_pairCapacity *= 2
	}

	bp.M_pairBuffer[bp.M_pairCount].ProxyIdA = MinInt(proxyId, bp.M_queryProxyId)
	bp.M_pairBuffer[bp.M_pairCount].ProxyIdB = MaxInt(proxyId, bp.M_queryProxyId)
	bp.M_pairCount++

	return true
}

func (bp *BroadPhase) Query(callback TreeQueryCallback, aabb AABB) {
	bp.M_tree.Query(callback, aabb)
}

func (bp *BroadPhase) RayCast(callback TreeRayCastCallback, input RayCastInput) {
	bp.M_tree.RayCast(callback, input)
}

func (bp *BroadPhase) ShiftOrigin(newOrigin Vec2) {
	bp.M_tree.ShiftOrigin(newOrigin)
}
