// Package identity normalizes the reference shapes the catalog accumulated
// over time. Product and category references arrive either as a plain
// identifier string, as a wrapped document {"_id": ...}, or as the extended
// JSON form {"$oid": ...}; every comparison in the system must reduce them to
// one canonical string or matching silently fails.
package identity

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unresolved is the canonical form of an absent reference. It contains a NUL
// byte so it can never collide with a stored identifier.
const Unresolved = "\x00unresolved"

type Kind uint8

const (
	KindNone Kind = iota
	KindLiteral
	KindWrappedID
	KindWrappedOID
)

// Ref is a tagged union over the accepted reference shapes. The zero value is
// the absent reference.
type Ref struct {
	kind Kind
	id   string
}

func Literal(id string) Ref    { return Ref{kind: KindLiteral, id: id} }
func WrappedID(id string) Ref  { return Ref{kind: KindWrappedID, id: id} }
func WrappedOID(id string) Ref { return Ref{kind: KindWrappedOID, id: id} }
func None() Ref                { return Ref{} }

func (r Ref) Kind() Kind { return r.kind }

func (r Ref) IsResolved() bool { return r.kind != KindNone }

// ID returns the canonical identifier regardless of the wire shape the
// reference arrived in.
func (r Ref) ID() string {
	if r.kind == KindNone {
		return Unresolved
	}
	return r.id
}

// Equal is the only sanctioned cross-shape comparison. Two unresolved
// references are never equal to each other or to anything else.
func Equal(a, b Ref) bool {
	return a.IsResolved() && b.IsResolved() && a.id == b.id
}

// Resolve normalizes an untyped decoded value into the canonical identifier
// string. Pure and total: unknown shapes resolve to the Unresolved sentinel
// rather than erroring.
func Resolve(v any) string {
	switch ref := v.(type) {
	case nil:
		return Unresolved
	case string:
		return ref
	case primitive.ObjectID:
		return ref.Hex()
	case Ref:
		return ref.ID()
	case map[string]any:
		if oid, ok := ref["$oid"]; ok {
			return coerceID(oid)
		}
		if id, ok := ref["_id"]; ok {
			return coerceID(id)
		}
		return Unresolved
	case primitive.D:
		for _, e := range ref {
			if e.Key == "$oid" {
				return coerceID(e.Value)
			}
		}
		for _, e := range ref {
			if e.Key == "_id" {
				return coerceID(e.Value)
			}
		}
		return Unresolved
	default:
		return Unresolved
	}
}

func coerceID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case map[string]any:
		// Mongoose-serialized {"_id": {"$oid": "..."}} nests once more.
		if oid, ok := id["$oid"]; ok {
			return coerceID(oid)
		}
		return Unresolved
	case nil:
		return Unresolved
	default:
		return fmt.Sprint(id)
	}
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.kind == KindNone {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = fromDecoded(v)
	return nil
}

func fromDecoded(v any) Ref {
	switch ref := v.(type) {
	case nil:
		return None()
	case string:
		return Literal(ref)
	case map[string]any:
		if oid, ok := ref["$oid"]; ok {
			if id := coerceID(oid); id != Unresolved {
				return WrappedOID(id)
			}
			return None()
		}
		if id, ok := ref["_id"]; ok {
			if c := coerceID(id); c != Unresolved {
				return WrappedID(c)
			}
			return None()
		}
		return None()
	default:
		return None()
	}
}

// MarshalBSONValue stores the canonical string so documents written by this
// process never reintroduce a wrapped shape.
func (r Ref) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.kind == KindNone {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(r.id)
}

func (r *Ref) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*r = None()
		return nil
	case bson.TypeString:
		s, _ := rv.StringValueOK()
		*r = Literal(s)
		return nil
	case bson.TypeObjectID:
		oid, _ := rv.ObjectIDOK()
		*r = WrappedOID(oid.Hex())
		return nil
	case bson.TypeEmbeddedDocument:
		doc := bson.Raw(data)
		if v, err := doc.LookupErr("$oid"); err == nil {
			*r = WrappedOID(rawValueID(v))
			return nil
		}
		if v, err := doc.LookupErr("_id"); err == nil {
			*r = WrappedID(rawValueID(v))
			return nil
		}
		*r = None()
		return nil
	default:
		return fmt.Errorf("identity: cannot decode reference from BSON type %s", t)
	}
}

func rawValueID(v bson.RawValue) string {
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	return v.String()
}
