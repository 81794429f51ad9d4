package jww

// Parse decodes a complete JWW byte buffer into a Document.
//
// Parse is a pure function of its input: two calls on the same bytes yield
// structurally equal Documents, and entities appear in Document.Entities in
// the exact order their records appeared in data. Parse returns at the
// first error with no partial Document, and never logs; callers decide
// whether to surface, translate, or retry a failure.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	r := NewReader(data)

	if err := decodeHeader(r, doc); err != nil {
		return nil, err
	}

	if err := decodeLayerGroups(r, &doc.LayerGroups); err != nil {
		return nil, err
	}

	entities, blockDefs, err := decodeEntityRun(r, doc.Version, doc)
	if err != nil {
		return nil, err
	}
	doc.Entities = entities
	doc.BlockDefs = blockDefs

	if err := linkBlocks(doc); err != nil {
		return nil, err
	}

	if doc.Version >= 700 {
		images, err := decodeEmbeddedImages(r)
		if err != nil {
			return nil, err
		}
		doc.EmbeddedImages = images
	}

	return doc, nil
}
