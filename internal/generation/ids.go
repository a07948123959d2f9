package generation

// Star IDs pack the star's cell, its index inside the cell and a member
// ordinal (0 for the field star, 1..2 for companions) into 63 bits:
//
//	| x:17 | y:17 | z:17 | index:10 | member:2 |
const (
	memberBits = 2
	indexBits  = 10
	axisBits   = 17

	axisOffset      = 1 << (axisBits - 1)
	maxStarsPerCell = 1<<indexBits - 1
	maxMembers      = 1 << memberBits

	memberMask = 1<<memberBits - 1
	indexMask  = 1<<indexBits - 1
	axisMask   = 1<<axisBits - 1

	zShift = indexBits + memberBits
	yShift = zShift + axisBits
	xShift = yShift + axisBits
)

type cellKey struct {
	x, y, z int64
}

func (c cellKey) valid() bool {
	return inAxisRange(c.x) && inAxisRange(c.y) && inAxisRange(c.z)
}

func inAxisRange(v int64) bool {
	return v >= -axisOffset && v < axisOffset
}

func encodeID(c cellKey, index, member int) uint64 {
	ux := uint64(c.x+axisOffset) & axisMask
	uy := uint64(c.y+axisOffset) & axisMask
	uz := uint64(c.z+axisOffset) & axisMask
	return ux<<xShift | uy<<yShift | uz<<zShift | uint64(index&indexMask)<<memberBits | uint64(member&memberMask)
}

func decodeID(id uint64) (c cellKey, index, member int) {
	c.x = int64(id>>xShift&axisMask) - axisOffset
	c.y = int64(id>>yShift&axisMask) - axisOffset
	c.z = int64(id>>zShift&axisMask) - axisOffset
	index = int(id >> memberBits & indexMask)
	member = int(id & memberMask)
	return c, index, member
}

// primaryID strips the member ordinal.
func primaryID(id uint64) uint64 {
	return id &^ memberMask
}
