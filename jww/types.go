package jww

import "encoding/json"

// Document represents a complete, immutable JWW (Jw_cad) file structure.
// JWW files are binary CAD files used by Jw_cad, a popular Japanese CAD software.
// The document contains layer information, drawing entities, block definitions,
// and (Ver.7.00+) embedded raster images. Once returned by Parse, a Document
// is never mutated further.
type Document struct {
	// Version indicates the JWW file format version (e.g., 351 for Ver.3.51, 420 for Ver.4.20).
	Version uint32 `json:"version"`

	// Memo is the file memo/description stored in the JWW header.
	Memo string `json:"memo"`

	// PaperSize specifies the paper size: 0-4 for A0-A4, 8 for 2A, 9 for 3A, etc.
	PaperSize uint32 `json:"paper_size"`

	// WriteLayerGroup is the currently active layer group for writing (0-15).
	WriteLayerGroup uint32 `json:"write_layer_group"`

	// LayerGroups contains 16 layer groups, each with 16 layers.
	// This provides a total of 256 possible layers organized in a hierarchical structure.
	LayerGroups [16]LayerGroup `json:"layer_groups"`

	// Entities contains all top-level drawing entities (lines, arcs, text, etc.)
	// in the exact order they appeared in the input.
	Entities []Entity `json:"entities"`

	// BlockDefs contains block definitions that can be referenced by Block
	// insertion entities, indexed by BlockDef.Number.
	BlockDefs []BlockDef `json:"block_defs"`

	// EmbeddedImages contains raster image blobs trailing the entity stream.
	// Always empty when Version < 700.
	EmbeddedImages []EmbeddedImage `json:"embedded_images"`

	PrintSettings    PrintSettings    `json:"print_settings"`
	SunpouSettings   SunpouSettings   `json:"sunpou_settings"`
	MetadataSettings MetadataSettings `json:"metadata_settings"`
}

// PrintSettings holds the header's print configuration block.
type PrintSettings struct {
	OriginX         float64 `json:"origin_x"`
	OriginY         float64 `json:"origin_y"`
	Scale           float64 `json:"scale"`
	RotationSetting int32   `json:"rotation_setting"`
}

// SunpouSettings holds the header's dimension (寸法, sunpou) annotation
// defaults.
type SunpouSettings struct {
	Sunpou1      float64 `json:"sunpou1"`
	Sunpou2      float64 `json:"sunpou2"`
	Sunpou3      float64 `json:"sunpou3"`
	Sunpou4      float64 `json:"sunpou4"`
	Sunpou5      float64 `json:"sunpou5"`
	Dummy        int32   `json:"dummy"`
	MaxLineWidth float64 `json:"max_line_width"`
}

// MetadataSettings holds the settings smuggled into the entity stream as
// CDataMoji "^@key=value" records (§4.5). Every field starts empty and is
// populated only when the corresponding key is encountered.
type MetadataSettings struct {
	PrinterPaperSize   string `json:"printer_paper_size"`
	DrawBmpTouka       string `json:"draw_bmp_touka"`
	ViewDirect2D       string `json:"view_direct2d"`
	PrinterBmpZentai   string `json:"printer_bmp_zentai"`
	PrinterOrientation string `json:"printer_orientation"`
	PrinterD2DBmp      string `json:"printer_d2d_bmp"`
}

// LayerGroup represents a layer group (レイヤグループ) in a JWW file.
// JWW organizes layers into 16 groups, with each group containing 16 layers.
// Each layer group can have its own display state, scale, and protection settings.
type LayerGroup struct {
	// State indicates the layer group's visibility and editability:
	// 0: hidden, 1: display only, 2: editable, 3: write mode
	State uint32 `json:"state"`

	// WriteLayer is the currently active layer for writing within this group (0-15).
	WriteLayer uint32 `json:"write_layer"`

	// Scale is the scale denominator for this layer group (e.g., 100.0 for 1:100).
	Scale float64 `json:"scale"`

	// Protect is the protection flag to prevent accidental modifications.
	Protect uint32 `json:"protect"`

	// Layers contains the 16 layers within this layer group.
	Layers [16]Layer `json:"layers"`

	// Name is the user-defined name of this layer group.
	Name string `json:"name"`
}

// Layer represents an individual layer within a layer group.
type Layer struct {
	// State indicates the layer's visibility and editability:
	// 0: hidden, 1: view-only, 2: editable, 3: write-mode
	State uint32 `json:"state"`

	// Protect is the protection flag to prevent accidental modifications.
	Protect uint32 `json:"protect"`

	// Name is the user-defined name of this layer.
	Name string `json:"name"`
}

// EntityBase contains common attributes shared by all JWW drawing entities.
type EntityBase struct {
	// Group is the curve attribute number (線種グループ).
	Group uint32 `json:"group"`

	// PenStyle is the line type number (線種). It also discriminates
	// CDataSolid between Solid (< 101) and ArcSolid (>= 101), and CDataTen
	// between a plain point (!= 100) and a marker point (== 100).
	PenStyle byte `json:"pen_style"`

	// PenColor is the line color number (1-9 for basic colors, extended
	// values denote SXF colors and are preserved verbatim).
	PenColor uint16 `json:"pen_color"`

	// PenWidth is the line width in internal units. Only meaningful when
	// Version >= 351; zero (the Go zero value) on earlier files, since the
	// field does not exist on disk there.
	PenWidth uint16 `json:"pen_width"`

	// Layer is the layer number within the layer group (0-15).
	Layer uint16 `json:"layer"`

	// LayerGroup is the layer group number (0-15).
	LayerGroup uint16 `json:"layer_group"`

	// Flag contains various attribute flags for the entity.
	Flag uint16 `json:"flag"`
}

// Entity is the interface implemented by every JWW drawing entity variant.
type Entity interface {
	// Base returns a pointer to the common EntityBase attributes.
	Base() *EntityBase

	// Type returns the entity variant's name, used as the "type" tag in
	// ToJSONString's tagged-object encoding.
	Type() string
}

// Line represents a straight line segment entity (JWW class: CDataSen).
type Line struct {
	EntityBase

	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

func (l *Line) Base() *EntityBase { return &l.EntityBase }
func (l *Line) Type() string      { return "Line" }

// Arc represents an arc, circle, or ellipse entity (JWW class: CDataEnko).
type Arc struct {
	EntityBase

	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"start_angle"`
	ArcAngle   float64 `json:"arc_angle"`
	TiltAngle  float64 `json:"tilt_angle"`
	Flatness   float64 `json:"flatness"`

	// IsFullCircle is derived as |ArcAngle - 2*Pi| < 1e-9, not read from disk.
	IsFullCircle bool `json:"is_full_circle"`
}

func (a *Arc) Base() *EntityBase { return &a.EntityBase }
func (a *Arc) Type() string      { return "Arc" }

// Point represents a point entity (JWW class: CDataTen).
type Point struct {
	EntityBase

	X float64 `json:"x"`
	Y float64 `json:"y"`

	// IsTemporary indicates if this is a temporary construction point (仮点).
	IsTemporary bool `json:"is_temporary"`

	// Code, Angle, and Scale are only present (non-zero) when PenStyle == 100,
	// i.e. this is a marker point rather than a plain point.
	Code  uint32  `json:"code"`
	Angle float64 `json:"angle"`
	Scale float64 `json:"scale"`
}

func (p *Point) Base() *EntityBase { return &p.EntityBase }
func (p *Point) Type() string      { return "Point" }

// Text represents a text entity (JWW class: CDataMoji).
type Text struct {
	EntityBase

	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`

	// TextType contains style flags: +10000 for italic, +20000 for bold.
	TextType uint32 `json:"text_type"`

	SizeX    float64 `json:"size_x"`
	SizeY    float64 `json:"size_y"`
	Spacing  float64 `json:"spacing"`
	Angle    float64 `json:"angle"`
	FontName string  `json:"font_name"`

	// Content is the decoded text body. A CDataMoji record whose Content
	// starts with "^@BM" or a recognized "^@key=value" never reaches this
	// type; see Image and the metadata side channel in §4.5.
	Content string `json:"content"`
}

func (t *Text) Base() *EntityBase { return &t.EntityBase }
func (t *Text) Type() string      { return "Text" }

// Solid represents a solid fill entity (JWW class: CDataSolid, PenStyle < 101).
type Solid struct {
	EntityBase

	Point1X float64 `json:"point1_x"`
	Point1Y float64 `json:"point1_y"`
	Point2X float64 `json:"point2_x"`
	Point2Y float64 `json:"point2_y"`
	Point3X float64 `json:"point3_x"`
	Point3Y float64 `json:"point3_y"`
	Point4X float64 `json:"point4_x"`
	Point4Y float64 `json:"point4_y"`

	// Color is the RGB color value, present only when PenColor == 10.
	Color uint32 `json:"color"`
}

func (s *Solid) Base() *EntityBase { return &s.EntityBase }
func (s *Solid) Type() string      { return "Solid" }

// ArcSolid represents an arc or ring solid fill (JWW class: CDataSolid, PenStyle >= 101).
type ArcSolid struct {
	EntityBase

	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	Radius     float64 `json:"radius"`
	Flatness   float64 `json:"flatness"`
	TiltAngle  float64 `json:"tilt_angle"`
	StartAngle float64 `json:"start_angle"`
	ArcAngle   float64 `json:"arc_angle"`
	SolidParam uint32  `json:"solid_param"`

	// Color is the RGB color value, present only when PenColor == 10.
	Color uint32 `json:"color"`
}

func (a *ArcSolid) Base() *EntityBase { return &a.EntityBase }
func (a *ArcSolid) Type() string      { return "ArcSolid" }

// Block represents a block insertion entity (JWW class: CDataBlock).
type Block struct {
	EntityBase

	RefX     float64 `json:"ref_x"`
	RefY     float64 `json:"ref_y"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
	Rotation float64 `json:"rotation"`

	// DefNumber is resolved against Document.BlockDefs by the block linker.
	DefNumber uint32 `json:"def_number"`

	// offset is the byte position of this record's class tag, kept only to
	// give MissingBlockDefinition errors a useful location. Unexported, so
	// it never appears in JSON output.
	offset int64
}

func (b *Block) Base() *EntityBase { return &b.EntityBase }
func (b *Block) Type() string      { return "Block" }

// Image represents an external bitmap reference synthesized from a CDataMoji
// record whose Content began with "^@BM" (§4.5). It is never read directly
// off disk as its own class tag.
type Image struct {
	EntityBase

	ImagePath string  `json:"image_path"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rotation  float64 `json:"rotation"`
}

func (i *Image) Base() *EntityBase { return &i.EntityBase }
func (i *Image) Type() string      { return "Image" }

// BlockDef represents a block definition (JWW class: CDataBlockDef, closed
// by CDataBlockEnd). Block definitions do not nest.
type BlockDef struct {
	EntityBase

	// Number is the unique block definition identifier, referenced by
	// Block.DefNumber.
	Number uint32 `json:"number"`

	// IsReferenced is computed by the block linker: true iff at least one
	// top-level Block entity (in Document.Entities) refers to Number.
	IsReferenced bool `json:"is_referenced"`

	// Name is the user-defined name of this block.
	Name string `json:"name"`

	// Entities contains the entities nested between the CDataBlockDef and
	// CDataBlockEnd records, in file order.
	Entities []Entity `json:"entities"`
}

// ImageFormat identifies the raster format of an EmbeddedImage, detected
// from its magic bytes (never user-supplied).
type ImageFormat int

const (
	ImageFormatUnknown ImageFormat = iota
	ImageFormatJpeg
	ImageFormatPng
	ImageFormatBmp
	ImageFormatGif
)

func (f ImageFormat) String() string {
	switch f {
	case ImageFormatJpeg:
		return "Jpeg"
	case ImageFormatPng:
		return "Png"
	case ImageFormatBmp:
		return "Bmp"
	case ImageFormatGif:
		return "Gif"
	default:
		return "Unknown"
	}
}

// MarshalJSON emits the format's string name, per spec.md §6.
func (f ImageFormat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// EmbeddedImage is a raster image blob trailing the entity stream in
// Ver.7.00+ files.
type EmbeddedImage struct {
	Index    int32       `json:"index"`
	FileSize int32       `json:"file_size"`
	Data     []byte      `json:"data"`
	Format   ImageFormat `json:"format"`
}
