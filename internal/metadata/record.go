// BYZRA ⸻ internal/metadata/record.go
// tagged field values and the ordered record built from them

package metadata

// what a record holds for one field
type State uint8

const (
	// nothing is written for the field
	Omitted State = iota
	// the field is written empty, erasing what the file had
	Empty
	// the field is written with a value
	Set
)

// zero Value is Omitted
type Value struct {
	state State
	text  string
}

func Omit() Value { return Value{} }

func Erase() Value { return Value{state: Empty} }

func Text(s string) Value { return Value{state: Set, text: s} }

func (v Value) State() State { return v.state }

func (v Value) IsOmitted() bool { return v.state == Omitted }

func (v Value) IsEmpty() bool { return v.state == Empty }

func (v Value) IsSet() bool { return v.state == Set }

// text of a Set value, "" otherwise
func (v Value) String() string {
	if v.state != Set {
		return ""
	}
	return v.text
}

// ordered mapping Field -> Value
//
// Record is a value type: assigning or passing it copies every field, so a
// stage that changes its copy never touches the caller's record.
type Record struct {
	values [fieldCount]Value
}

func (r Record) Get(f Field) Value {
	if !f.Valid() {
		return Value{}
	}
	return r.values[f]
}

func (r *Record) Set(f Field, v Value) {
	if !f.Valid() {
		return
	}
	r.values[f] = v
}

// shorthand for Set(f, Text(s))
func (r *Record) SetText(f Field, s string) {
	r.Set(f, Text(s))
}

// non-omitted fields in record order
func (r Record) Present() []Field {
	var fields []Field
	for f := Field(0); f < fieldCount; f++ {
		if !r.values[f].IsOmitted() {
			fields = append(fields, f)
		}
	}
	return fields
}

// number of non-omitted fields
func (r Record) Len() int {
	n := 0
	for _, v := range r.values {
		if !v.IsOmitted() {
			n++
		}
	}
	return n
}

// tag -> text for every non-omitted field, empty fields map to ""
func (r Record) Strings() map[string]string {
	out := make(map[string]string, r.Len())
	for f := Field(0); f < fieldCount; f++ {
		if v := r.values[f]; !v.IsOmitted() {
			out[f.String()] = v.String()
		}
	}
	return out
}
