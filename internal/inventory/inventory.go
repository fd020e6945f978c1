package inventory

// Inventory holds the package versions from an apt listing, preserving the
// order in which packages first appeared so reports stay stable between runs.
type Inventory struct {
	versions map[string]string
	names    []string
}

// New creates an empty Inventory
func New() *Inventory {
	return &Inventory{versions: make(map[string]string)}
}

// Set records a version for a package. A package seen before keeps its
// original position and takes the new version.
func (inv *Inventory) Set(name, version string) {
	if _, ok := inv.versions[name]; !ok {
		inv.names = append(inv.names, name)
	}
	inv.versions[name] = version
}

// Version returns the recorded version for a package
func (inv *Inventory) Version(name string) (string, bool) {
	v, ok := inv.versions[name]
	return v, ok
}

// Names returns the package names in first-seen order
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.names))
	copy(names, inv.names)
	return names
}

// Len returns the number of packages in the inventory
func (inv *Inventory) Len() int {
	return len(inv.names)
}
