package node

// IsValid reports whether every modified container of the tree holds a
// value, that is whether ToValue leaves nothing explicitly set behind.
func (c *Container) IsValid() bool {
	valid := true
	c.Walk(func(_ *Path, d *Container) bool {
		if !valid {
			return false
		}
		if !d.Modified {
			return true
		}
		switch n := d.Node.(type) {
		case *Bool:
			valid = n.Bound
		case *String:
			valid = n.Bound
		case *Number:
			valid = n.Bound
		case *Any:
			valid = n.Bound
		case *Enum:
			valid = n.Selection() != nil
		case *Array:
			valid = n.Bound
		}
		return valid
	})
	return valid
}
