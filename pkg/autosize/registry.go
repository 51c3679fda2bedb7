package autosize

// registry maps each managed element to its controller. Elements are
// compared by interface identity, so hosts must hand out one Element value
// per document node.
type registry struct {
	controllers map[Element]*controller
}

func newRegistry() *registry {
	return &registry{controllers: make(map[Element]*controller)}
}

func (r *registry) get(el Element) (*controller, bool) {
	c, ok := r.controllers[el]
	return c, ok
}

func (r *registry) has(el Element) bool {
	_, ok := r.controllers[el]
	return ok
}

func (r *registry) put(el Element, c *controller) {
	r.controllers[el] = c
}

func (r *registry) remove(el Element) {
	delete(r.controllers, el)
}

func (r *registry) len() int {
	return len(r.controllers)
}
