package playrho

// Processes the broad-phase proxy movements accumulated since the last
// call, creating a contact for every new potentially overlapping fixture
// child pair. Returns the number of contacts created. On running out of
// contact slots the remaining pairs get skipped and ErrMaxContacts
// returned alongside the count created so far.
func (world *World) findNewContacts() (int, error) {
	added := 0
	var firstErr error
	world.M_broadPhase.UpdatePairs(func(keyA ProxyKey, keyB ProxyKey) {
		if firstErr != nil {
			return
		}
		created, err := world.addPair(keyA, keyB)
		if err != nil {
			firstErr = err
			return
		}
		if created {
			added++
		}
	})
	return added, firstErr
}

// Establishes a contact for the given potentially overlapping fixture
// child pair unless the pair is uncollidable (same body, already
// contacted, joined non-collidably, or filtered out). The fixtures get
// ordered so that the lower collision ranked shape is fixture A.
func (world *World) addPair(keyA ProxyKey, keyB ProxyKey) (bool, error) {
	fixtureIDA := keyA.Fixture
	fixtureIDB := keyB.Fixture
	indexA := keyA.Child
	indexB := keyB.Child

	fixtureA := world.fixturePtr(fixtureIDA)
	fixtureB := world.fixturePtr(fixtureIDB)

	bodyIDA := fixtureA.M_body
	bodyIDB := fixtureB.M_body

	// Are the fixtures on the same body?
	if bodyIDA == bodyIDB {
		return false, nil
	}

	// Does a contact already exist?
	for _, ce := range world.bodyPtr(bodyIDB).M_contacts {
		if ce.Other != bodyIDA {
			continue
		}
		contact := world.contactPtr(ce.Contact)
		fA := contact.GetFixtureA()
		fB := contact.GetFixtureB()
		iA := contact.GetChildIndexA()
		iB := contact.GetChildIndexB()

		if fA == fixtureIDA && fB == fixtureIDB && iA == indexA && iB == indexB {
			// A contact already exists.
			return false, nil
		}
		if fA == fixtureIDB && fB == fixtureIDA && iA == indexB && iB == indexA {
			// A contact already exists.
			return false, nil
		}
	}

	// Does a joint override collision? Is at least one body dynamic?
	if !world.shouldBodiesCollide(bodyIDB, bodyIDA) {
		return false, nil
	}

	// Check user filtering.
	if !ShouldCollideFilters(fixtureA.GetFilterData(), fixtureB.GetFilterData()) {
		return false, nil
	}

	if len(world.M_contacts) >= MaxContacts {
		return false, ErrMaxContacts
	}

	// Order the fixtures so that manifold computation only ever sees each
	// mixed shape pairing one way around.
	if collisionRank(fixtureA.GetShape().GetType()) > collisionRank(fixtureB.GetShape().GetType()) {
		fixtureIDA, fixtureIDB = fixtureIDB, fixtureIDA
		fixtureA, fixtureB = fixtureB, fixtureA
		bodyIDA, bodyIDB = bodyIDB, bodyIDA
		indexA, indexB = indexB, indexA
	}

	index := world.allocContactSlot()
	world.M_contactBuffer[index] = MakeContact(fixtureIDA, fixtureA, indexA, fixtureIDB, fixtureB, indexB)
	id := ContactID(makeIDValue(index, world.M_contactGenerations[index]))
	world.M_contacts = append(world.M_contacts, id)

	// Connect to the bodies' constraint graphs.
	bodyA := world.bodyPtr(bodyIDA)
	bodyA.M_contacts = append(bodyA.M_contacts, ContactEdge{Other: bodyIDB, Contact: id})
	bodyB := world.bodyPtr(bodyIDB)
	bodyB.M_contacts = append(bodyB.M_contacts, ContactEdge{Other: bodyIDA, Contact: id})

	if !fixtureA.IsSensor() && !fixtureB.IsSensor() {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}

	return true, nil
}

// Whether the identified bodies may collide: at least one of them has to
// be dynamic and no joint between them may suppress collision.
func (world *World) shouldBodiesCollide(bodyIDB BodyID, bodyIDA BodyID) bool {
	bodyA := world.bodyPtr(bodyIDA)
	bodyB := world.bodyPtr(bodyIDB)

	// At least one body should be dynamic.
	if bodyB.GetType() != BodyType.E_dynamic && bodyA.GetType() != BodyType.E_dynamic {
		return false
	}

	// Does a joint prevent collision?
	for _, je := range bodyB.M_joints {
		if je.Other == bodyIDA {
			if !world.jointPtr(je.Joint).GetCollideConnected() {
				return false
			}
		}
	}

	return true
}

// Narrow-phase pass over the contacts against the current body positions.
// Refilters contacts that asked for it, destroys contacts whose fattened
// broad-phase boxes stopped overlapping, recomputes the manifolds of
// contacts flagged as needing it, and skips the rest. Returns the counts
// of contacts updated, skipped, and destroyed.
func (world *World) updateContacts() (int, int, int) {
	updated := 0
	skipped := 0
	destroyed := 0

	// Snapshot the identifiers since destroying a contact shrinks the
	// live list.
	ids := append([]ContactID(nil), world.M_contacts...)
	for _, id := range ids {
		contact := world.contactPtr(id)

		bodyIDA := contact.GetBodyA()
		bodyIDB := contact.GetBodyB()
		bodyA := world.bodyPtr(bodyIDA)
		bodyB := world.bodyPtr(bodyIDB)

		// Is this contact flagged for filtering?
		if contact.NeedsFiltering() {
			// Should these bodies collide?
			if !world.shouldBodiesCollide(bodyIDB, bodyIDA) {
				world.destroyContact(id)
				destroyed++
				continue
			}

			// Check user filtering.
			fixtureA := world.fixturePtr(contact.GetFixtureA())
			fixtureB := world.fixturePtr(contact.GetFixtureB())
			if !ShouldCollideFilters(fixtureA.GetFilterData(), fixtureB.GetFilterData()) {
				world.destroyContact(id)
				destroyed++
				continue
			}

			// Clear the filtering flag.
			contact.UnflagForFiltering()
		}

		activeA := bodyA.IsAwake() && bodyA.GetType() != BodyType.E_static
		activeB := bodyB.IsAwake() && bodyB.GetType() != BodyType.E_static

		// At least one body must be awake and it must be dynamic or
		// kinematic.
		if !activeA && !activeB {
			skipped++
			continue
		}

		fixtureA := world.fixturePtr(contact.GetFixtureA())
		fixtureB := world.fixturePtr(contact.GetFixtureB())
		proxyIdA := fixtureA.M_proxies[contact.GetChildIndexA()].ProxyId
		proxyIdB := fixtureB.M_proxies[contact.GetChildIndexB()].ProxyId
		overlap := world.M_broadPhase.TestOverlap(proxyIdA, proxyIdB)

		// Here we destroy contacts that cease to overlap in the
		// broad-phase.
		if !overlap {
			world.destroyContact(id)
			destroyed++
			continue
		}

		// Possible that bodies were rotated or translated, per the user,
		// but proxies didn't change significantly.
		if !contact.NeedsUpdating() {
			skipped++
			continue
		}

		// The contact persists.
		world.updateContact(id, contact)
		updated++
	}

	return updated, skipped, destroyed
}

// Recomputes the given contact's manifold, wakes the bodies on touch
// transitions, and calls the contact listeners.
func (world *World) updateContact(id ContactID, contact *Contact) {
	fixtureA := world.fixturePtr(contact.GetFixtureA())
	fixtureB := world.fixturePtr(contact.GetFixtureB())
	sensor := fixtureA.IsSensor() || fixtureB.IsSensor()

	bodyA := world.bodyPtr(contact.GetBodyA())
	bodyB := world.bodyPtr(contact.GetBodyB())
	xfA := bodyA.GetTransform()
	xfB := bodyB.GetTransform()

	oldManifold, wasTouching, touching := contact.Update(
		fixtureA.GetShape(), xfA, fixtureB.GetShape(), xfB, sensor)

	if touching != wasTouching {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}

	if touching && !wasTouching && world.M_beginContactListener != nil {
		world.M_beginContactListener(id)
	}
	if !touching && wasTouching && world.M_endContactListener != nil {
		world.M_endContactListener(id)
	}
	if !sensor && touching && world.M_preSolveContactListener != nil {
		world.M_preSolveContactListener(id, oldManifold)
	}
}

// Destroys the identified contact, telling the end listener when it was
// touching and waking its bodies when it had manifold points.
func (world *World) destroyContact(id ContactID) {
	contact := world.contactPtr(id)

	if contact.IsTouching() && world.M_endContactListener != nil {
		world.M_endContactListener(id)
	}

	bodyIDA := contact.GetBodyA()
	bodyIDB := contact.GetBodyB()
	pointCount := contact.GetManifold().PointCount
	sensorA := world.fixturePtr(contact.GetFixtureA()).IsSensor()
	sensorB := world.fixturePtr(contact.GetFixtureB()).IsSensor()

	world.M_contacts = removeContactID(world.M_contacts, id)
	world.freeContactSlot(idIndex(uint32(id)))

	bodyA := world.bodyPtr(bodyIDA)
	bodyA.M_contacts = removeContactEdge(bodyA.M_contacts, id)
	bodyB := world.bodyPtr(bodyIDB)
	bodyB.M_contacts = removeContactEdge(bodyB.M_contacts, id)

	if pointCount > 0 && !sensorA && !sensorB {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}
}
