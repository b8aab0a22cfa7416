// BYZRA ⸻ internal/metadata/field.go
// closed set of writable metadata fields

package metadata

import "strings"

// a single writable metadata field, named after its exiftool tag
type Field int

const (
	Make Field = iota
	Model
	Software
	LensModel
	ExposureTime
	FNumber
	ISO
	FocalLength
	WhiteBalance
	Flash
	Orientation

	DateTimeOriginal
	CreateDate
	ModifyDate

	GPSLatitude
	GPSLatitudeRef
	GPSLongitude
	GPSLongitudeRef
	GPSAltitude
	GPSAltitudeRef
	GPSTimeStamp
	GPSDateStamp

	Creator
	Copyright
	Description
	Title
	Keywords
	Location

	fieldCount
)

// value domain of a field
type Kind int

const (
	Enumerated Kind = iota
	FreeText
	Numeric
	DateTime
	Coordinate
)

// grouping used by reports
type Category int

const (
	CategoryDevice Category = iota
	CategoryDateTime
	CategoryGPS
	CategoryDescriptive
)

type fieldInfo struct {
	tag      string
	alias    string
	kind     Kind
	category Category
}

var fieldTable = [fieldCount]fieldInfo{
	Make:         {"Make", "make", Enumerated, CategoryDevice},
	Model:        {"Model", "model", Enumerated, CategoryDevice},
	Software:     {"Software", "software", Enumerated, CategoryDevice},
	LensModel:    {"LensModel", "lens_model", Enumerated, CategoryDevice},
	ExposureTime: {"ExposureTime", "exposure_time", Enumerated, CategoryDevice},
	FNumber:      {"FNumber", "fnumber", Enumerated, CategoryDevice},
	ISO:          {"ISO", "iso", Enumerated, CategoryDevice},
	FocalLength:  {"FocalLength", "focal_length", Enumerated, CategoryDevice},
	WhiteBalance: {"WhiteBalance", "white_balance", Enumerated, CategoryDevice},
	Flash:        {"Flash", "flash", Enumerated, CategoryDevice},
	Orientation:  {"Orientation", "orientation", Enumerated, CategoryDevice},

	DateTimeOriginal: {"DateTimeOriginal", "date_time_original", DateTime, CategoryDateTime},
	CreateDate:       {"CreateDate", "create_date", DateTime, CategoryDateTime},
	ModifyDate:       {"ModifyDate", "modify_date", DateTime, CategoryDateTime},

	GPSLatitude:     {"GPSLatitude", "gps_latitude", Coordinate, CategoryGPS},
	GPSLatitudeRef:  {"GPSLatitudeRef", "gps_latitude_ref", Enumerated, CategoryGPS},
	GPSLongitude:    {"GPSLongitude", "gps_longitude", Coordinate, CategoryGPS},
	GPSLongitudeRef: {"GPSLongitudeRef", "gps_longitude_ref", Enumerated, CategoryGPS},
	GPSAltitude:     {"GPSAltitude", "gps_altitude", Numeric, CategoryGPS},
	GPSAltitudeRef:  {"GPSAltitudeRef", "gps_altitude_ref", Enumerated, CategoryGPS},
	GPSTimeStamp:    {"GPSTimeStamp", "gps_time_stamp", DateTime, CategoryGPS},
	GPSDateStamp:    {"GPSDateStamp", "gps_date_stamp", DateTime, CategoryGPS},

	Creator:     {"Creator", "creator", FreeText, CategoryDescriptive},
	Copyright:   {"Copyright", "copyright_notice", FreeText, CategoryDescriptive},
	Description: {"Description", "description", FreeText, CategoryDescriptive},
	Title:       {"Title", "title", FreeText, CategoryDescriptive},
	Keywords:    {"Keywords", "keywords", FreeText, CategoryDescriptive},
	Location:    {"Location", "location", FreeText, CategoryDescriptive},
}

// all fields in record order
func Fields() []Field {
	fields := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		fields = append(fields, f)
	}
	return fields
}

// fields of one category in record order
func FieldsIn(c Category) []Field {
	var fields []Field
	for f := Field(0); f < fieldCount; f++ {
		if fieldTable[f].category == c {
			fields = append(fields, f)
		}
	}
	return fields
}

func (f Field) Valid() bool {
	return f >= 0 && f < fieldCount
}

// exiftool tag name
func (f Field) String() string {
	if !f.Valid() {
		return "Field(?)"
	}
	return fieldTable[f].tag
}

func (f Field) Kind() Kind {
	return fieldTable[f].kind
}

func (f Field) Category() Category {
	return fieldTable[f].category
}

// looks a field up by tag name (any case) or preset alias
func ParseField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for f := Field(0); f < fieldCount; f++ {
		info := fieldTable[f]
		if strings.EqualFold(info.tag, name) || strings.EqualFold(info.alias, name) {
			return f, true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	switch k {
	case Enumerated:
		return "enumerated"
	case FreeText:
		return "text"
	case Numeric:
		return "numeric"
	case DateTime:
		return "datetime"
	case Coordinate:
		return "coordinate"
	default:
		return "unknown"
	}
}

func (c Category) String() string {
	switch c {
	case CategoryDevice:
		return "device"
	case CategoryDateTime:
		return "datetime"
	case CategoryGPS:
		return "gps"
	case CategoryDescriptive:
		return "descriptive"
	default:
		return "unknown"
	}
}
