package jww

import "encoding/json"

// ToJSONString serializes a Document to JSON. Field names mirror the
// Document's attribute names from spec.md §3. Entity is serialized as a
// tagged object {"type": <variant name>, "value": {...fields...}}, and
// EmbeddedImage.Data is serialized as an array of byte values rather than
// encoding/json's default base64 string.
func ToJSONString(doc *Document) (string, error) {
	out, err := json.Marshal(toDocumentJSON(doc))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type documentJSON struct {
	Version          uint32           `json:"version"`
	Memo             string           `json:"memo"`
	PaperSize        uint32           `json:"paper_size"`
	WriteLayerGroup  uint32           `json:"write_layer_group"`
	LayerGroups      [16]LayerGroup   `json:"layer_groups"`
	Entities         []entityEnvelope `json:"entities"`
	BlockDefs        []blockDefJSON   `json:"block_defs"`
	EmbeddedImages   []EmbeddedImage  `json:"embedded_images"`
	PrintSettings    PrintSettings    `json:"print_settings"`
	SunpouSettings   SunpouSettings   `json:"sunpou_settings"`
	MetadataSettings MetadataSettings `json:"metadata_settings"`
}

type blockDefJSON struct {
	EntityBase
	Number       uint32           `json:"number"`
	IsReferenced bool             `json:"is_referenced"`
	Name         string           `json:"name"`
	Entities     []entityEnvelope `json:"entities"`
}

// entityEnvelope is the tagged-object encoding spec.md §6 requires for
// every Entity in a JSON document.
type entityEnvelope struct {
	Type  string `json:"type"`
	Value Entity `json:"value"`
}

func toDocumentJSON(doc *Document) documentJSON {
	return documentJSON{
		Version:          doc.Version,
		Memo:             doc.Memo,
		PaperSize:        doc.PaperSize,
		WriteLayerGroup:  doc.WriteLayerGroup,
		LayerGroups:      doc.LayerGroups,
		Entities:         wrapEntities(doc.Entities),
		BlockDefs:        wrapBlockDefs(doc.BlockDefs),
		EmbeddedImages:   doc.EmbeddedImages,
		PrintSettings:    doc.PrintSettings,
		SunpouSettings:   doc.SunpouSettings,
		MetadataSettings: doc.MetadataSettings,
	}
}

func wrapEntities(entities []Entity) []entityEnvelope {
	wrapped := make([]entityEnvelope, len(entities))
	for i, e := range entities {
		wrapped[i] = entityEnvelope{Type: e.Type(), Value: e}
	}
	return wrapped
}

func wrapBlockDefs(defs []BlockDef) []blockDefJSON {
	wrapped := make([]blockDefJSON, len(defs))
	for i, d := range defs {
		wrapped[i] = blockDefJSON{
			EntityBase:   d.EntityBase,
			Number:       d.Number,
			IsReferenced: d.IsReferenced,
			Name:         d.Name,
			Entities:     wrapEntities(d.Entities),
		}
	}
	return wrapped
}

// embeddedImageJSON mirrors EmbeddedImage but encodes Data as an array of
// byte values instead of encoding/json's default base64-string treatment
// of []byte.
type embeddedImageJSON struct {
	Index    int32       `json:"index"`
	FileSize int32       `json:"file_size"`
	Data     []int       `json:"data"`
	Format   ImageFormat `json:"format"`
}

// MarshalJSON encodes Data as a JSON array of byte values, per spec.md §6.
func (img EmbeddedImage) MarshalJSON() ([]byte, error) {
	data := make([]int, len(img.Data))
	for i, b := range img.Data {
		data[i] = int(b)
	}
	return json.Marshal(embeddedImageJSON{
		Index:    img.Index,
		FileSize: img.FileSize,
		Data:     data,
		Format:   img.Format,
	})
}
