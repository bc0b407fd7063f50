package prefabs

// Cache keeps parsed entity prefabs so spawning does not re-read YAML. It is
// used from the update goroutine only; the Watcher hands changes over on a
// channel and the caller invalidates here.
type Cache struct {
	specs map[string]EntityBuildSpec
}

func NewCache() *Cache {
	return &Cache{specs: make(map[string]EntityBuildSpec)}
}

// Get returns the parsed prefab, loading it on first use.
func (c *Cache) Get(name string) (EntityBuildSpec, error) {
	key := Name(name)
	if spec, ok := c.specs[key]; ok {
		return spec, nil
	}

	spec, err := LoadEntityBuildSpec(key)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	c.specs[key] = spec
	return spec, nil
}

// Invalidate drops name so the next Get reloads it.
func (c *Cache) Invalidate(name string) {
	delete(c.specs, Name(name))
}

func (c *Cache) Clear() {
	c.specs = make(map[string]EntityBuildSpec)
}

func (c *Cache) Len() int {
	return len(c.specs)
}
