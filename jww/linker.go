package jww

// linkBlocks resolves Block insertions against the collected block
// definitions. For every top-level Block entity, it looks up DefNumber in
// blockDefs and marks the matching definition IsReferenced. A Block
// insertion with no matching definition is a hard error, per spec.md §4.6.
//
// Only top-level entities are walked, matching spec.md §4.6's own wording
// ("iterate over the top-level entities"); entities nested inside a
// BlockDef body are not independently linked.
func linkBlocks(doc *Document) error {
	index := make(map[uint32]int, len(doc.BlockDefs))
	for i := range doc.BlockDefs {
		index[doc.BlockDefs[i].Number] = i
	}

	for _, e := range doc.Entities {
		block, ok := e.(*Block)
		if !ok {
			continue
		}
		i, found := index[block.DefNumber]
		if !found {
			return errMissingBlockDefinition(block.offset, block.DefNumber)
		}
		doc.BlockDefs[i].IsReferenced = true
	}
	return nil
}
