package encode

type EncodeOption func(*EncState)

// Depth limits the rendered depth, 0 meaning no limit.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// EncodeDefaults appends schema defaults to the lines of containers
// having one.
func EncodeDefaults(v bool) EncodeOption {
	return func(es *EncState) { es.defaults = v }
}

// EncodeComments appends titles as comments.
func EncodeComments(v bool) EncodeOption {
	return func(es *EncState) { es.comments = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
