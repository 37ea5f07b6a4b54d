package onedb

// ParamKind classifies a bind parameter the way the wire protocol wants it
// serialized. The byte value doubles as the single-character type tag.
type ParamKind byte

const (
	KindInteger ParamKind = 'i'
	KindFloat   ParamKind = 'd'
	KindText    ParamKind = 's'
	KindBlob    ParamKind = 'b'
)

// Tag returns the single-character tag for the kind.
func (k ParamKind) Tag() string { return string(rune(k)) }

// Param is a tagged bind parameter: an explicit kind plus the value.
type Param struct {
	Kind  ParamKind
	Value any
}

// Int builds an integer-kind parameter.
func Int(v int64) Param { return Param{Kind: KindInteger, Value: v} }

// Float builds a float-kind parameter.
func Float(v float64) Param { return Param{Kind: KindFloat, Value: v} }

// Text builds a text-kind parameter.
func Text(v string) Param { return Param{Kind: KindText, Value: v} }

// Blob builds a blob-kind parameter.
func Blob(v []byte) Param { return Param{Kind: KindBlob, Value: v} }

// InferKind maps a runtime value to its parameter kind: integers of any
// width and signedness are KindInteger, float32/float64 are KindFloat,
// strings are KindText, and everything else (byte slices, booleans, times,
// nil) falls back to KindBlob.
func InferKind(v any) ParamKind {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float32, float64:
		return KindFloat
	case string:
		return KindText
	default:
		return KindBlob
	}
}

// inferParams tags each positional argument in order.
func inferParams(args []any) []Param {
	if len(args) == 0 {
		return nil
	}
	ps := make([]Param, len(args))
	for i, a := range args {
		ps[i] = Param{Kind: InferKind(a), Value: a}
	}
	return ps
}

// typeString concatenates the type tags of params, e.g. "isd" for an
// integer, a string and a double bound in that order.
func typeString(ps []Param) string {
	if len(ps) == 0 {
		return ""
	}
	b := make([]byte, len(ps))
	for i, p := range ps {
		b[i] = byte(p.Kind)
	}
	return string(b)
}

// bindArgs strips the tags back off for database/sql.
func bindArgs(ps []Param) []any {
	if len(ps) == 0 {
		return nil
	}
	args := make([]any, len(ps))
	for i, p := range ps {
		args[i] = p.Value
	}
	return args
}
