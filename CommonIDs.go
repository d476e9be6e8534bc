package playrho

/// Identifier for a body within a world.
/// The low 16 bits index the body's slot; the high 16 bits hold the slot's
/// generation so a stale identifier is detectable after the slot is reused.
type BodyID uint32

/// Identifier for a fixture within a world.
type FixtureID uint32

/// Identifier for a joint within a world.
type JointID uint32

/// Identifier for a contact within a world.
type ContactID uint32

const InvalidBodyID = BodyID(0xFFFFFFFF)
const InvalidFixtureID = FixtureID(0xFFFFFFFF)
const InvalidJointID = JointID(0xFFFFFFFF)
const InvalidContactID = ContactID(0xFFFFFFFF)

func makeIDValue(index int, generation uint16) uint32 {
	assert(index >= 0 && index < 0xFFFF)
	return uint32(generation)<<16 | uint32(index)
}

func idIndex(id uint32) int {
	return int(id & 0xFFFF)
}

func idGeneration(id uint32) uint16 {
	return uint16(id >> 16)
}
