package hostchan

// CanonicalMin implements solutions.CanonicalMinClient (spec §6
// "canonicalmin"). preimage1Indexed and the returned image are both
// already 1-indexed on the wire; solutions.UpdateCanonical handles the
// 0/1-indexing conversion on its side, so this is a pass-through call.
func (c *Conn) CanonicalMin(preimage1Indexed []int) ([]int, error) {
	var image []int
	err := c.call([]any{"canonicalmin", preimage1Indexed}, &image)
	return image, err
}
