package jww

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestToJSONStringEntityEnvelopeShape(t *testing.T) {
	doc := &Document{
		Entities: []Entity{
			&Line{EntityBase: EntityBase{Layer: 2}, StartX: 1, StartY: 2, EndX: 3, EndY: 4},
		},
	}
	out, err := ToJSONString(doc)
	if err != nil {
		t.Fatalf("ToJSONString: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	entities, ok := decoded["entities"].([]any)
	if !ok || len(entities) != 1 {
		t.Fatalf("entities = %v, want a one-element array", decoded["entities"])
	}
	envelope, ok := entities[0].(map[string]any)
	if !ok {
		t.Fatalf("entities[0] = %v, not an object", entities[0])
	}
	if envelope["type"] != "Line" {
		t.Fatalf("entities[0].type = %v, want Line", envelope["type"])
	}
	value, ok := envelope["value"].(map[string]any)
	if !ok {
		t.Fatalf("entities[0].value = %v, not an object", envelope["value"])
	}
	if value["start_x"] != float64(1) {
		t.Fatalf("value.start_x = %v, want 1", value["start_x"])
	}
	if value["layer"] != float64(2) {
		t.Fatalf("value.layer = %v, want 2", value["layer"])
	}
}

func TestToJSONStringEmbeddedImageDataIsByteArrayNotBase64(t *testing.T) {
	doc := &Document{
		EmbeddedImages: []EmbeddedImage{
			{Index: 0, FileSize: 3, Data: []byte{0x01, 0x02, 0xFF}, Format: ImageFormatPng},
		},
	}
	out, err := ToJSONString(doc)
	if err != nil {
		t.Fatalf("ToJSONString: %v", err)
	}
	if strings.Contains(out, `"data":"`) {
		t.Fatalf("output contains a base64-style string field: %s", out)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	images, ok := decoded["embedded_images"].([]any)
	if !ok || len(images) != 1 {
		t.Fatalf("embedded_images = %v, want one-element array", decoded["embedded_images"])
	}
	img := images[0].(map[string]any)
	data, ok := img["data"].([]any)
	if !ok {
		t.Fatalf("data = %v, want a JSON array", img["data"])
	}
	if len(data) != 3 || data[0] != float64(1) || data[2] != float64(255) {
		t.Fatalf("data = %v, want [1 2 255]", data)
	}
}

func TestToJSONStringImageFormatIsStringName(t *testing.T) {
	doc := &Document{
		EmbeddedImages: []EmbeddedImage{
			{Format: ImageFormatJpeg},
		},
	}
	out, err := ToJSONString(doc)
	if err != nil {
		t.Fatalf("ToJSONString: %v", err)
	}
	if !strings.Contains(out, `"format":"Jpeg"`) {
		t.Fatalf("output = %s, want format encoded as the string Jpeg", out)
	}
}

func TestToJSONStringBlockDefsCarryEntitiesAndIsReferenced(t *testing.T) {
	doc := &Document{
		BlockDefs: []BlockDef{
			{
				Number:       3,
				IsReferenced: true,
				Name:         "part",
				Entities:     []Entity{&Point{X: 1, Y: 2}},
			},
		},
	}
	out, err := ToJSONString(doc)
	if err != nil {
		t.Fatalf("ToJSONString: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	defs := decoded["block_defs"].([]any)
	if len(defs) != 1 {
		t.Fatalf("block_defs = %v, want one element", defs)
	}
	def := defs[0].(map[string]any)
	if def["is_referenced"] != true {
		t.Fatalf("is_referenced = %v, want true", def["is_referenced"])
	}
	if def["number"] != float64(3) {
		t.Fatalf("number = %v, want 3", def["number"])
	}
	nested := def["entities"].([]any)
	if len(nested) != 1 {
		t.Fatalf("nested entities = %v, want one element", nested)
	}
	envelope := nested[0].(map[string]any)
	if envelope["type"] != "Point" {
		t.Fatalf("nested entity type = %v, want Point", envelope["type"])
	}
}

func TestToJSONStringFieldNamesAreSnakeCase(t *testing.T) {
	doc := &Document{Version: 351, PaperSize: 2, WriteLayerGroup: 0}
	out, err := ToJSONString(doc)
	if err != nil {
		t.Fatalf("ToJSONString: %v", err)
	}
	for _, field := range []string{`"version"`, `"paper_size"`, `"write_layer_group"`, `"layer_groups"`, `"print_settings"`, `"sunpou_settings"`, `"metadata_settings"`} {
		if !strings.Contains(out, field) {
			t.Fatalf("output missing expected field %s: %s", field, out)
		}
	}
}
