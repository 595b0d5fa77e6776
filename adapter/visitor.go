package adapter

import (
	"fmt"

	"github.com/yasammez/nachricht-go/errs"
	"github.com/yasammez/nachricht-go/value"
)

// Visitor is the deserialization adapter's callback surface: one
// method per wire shape the "any" decode path can produce. Accept
// drives a Visitor from an already-decoded value.Value, dispatching by
// observed wire kind.
type Visitor interface {
	VisitNull() (any, error)
	VisitBool(bool) (any, error)
	VisitF32(float32) (any, error)
	VisitF64(float64) (any, error)
	VisitInt(value.Int) (any, error)
	VisitBytes([]byte) (any, error)
	VisitString(string) (any, error)
	VisitSymbol(string) (any, error)
	VisitArray([]value.Value) (any, error)
	VisitRecord([]value.Field) (any, error)
	VisitMap([]value.MapEntry) (any, error)
}

// Accept dispatches v to the matching Visitor callback.
func Accept(v value.Value, vis Visitor) (any, error) {
	switch v.Kind() {
	case value.KindNull:
		return vis.VisitNull()
	case value.KindBool:
		return vis.VisitBool(v.AsBool())
	case value.KindF32:
		return vis.VisitF32(v.AsF32())
	case value.KindF64:
		return vis.VisitF64(v.AsF64())
	case value.KindInt:
		return vis.VisitInt(v.AsInt())
	case value.KindBytes:
		return vis.VisitBytes(v.AsBytes())
	case value.KindString:
		return vis.VisitString(v.AsString())
	case value.KindSymbol:
		return vis.VisitSymbol(v.AsSymbol())
	case value.KindArray:
		return vis.VisitArray(v.AsArray())
	case value.KindRecord:
		return vis.VisitRecord(v.AsRecord())
	case value.KindMap:
		return vis.VisitMap(v.AsMap())
	default:
		return nil, fmt.Errorf("%w: unrecognized value kind", errs.ErrUnexpectedWireKind)
	}
}

// ValueVisitor is the default "any" visitor: it returns the
// value.Value unchanged, wrapped as any, for callers that want the
// self-describing tree itself rather than a projection of it.
type ValueVisitor struct{}

func (ValueVisitor) VisitNull() (any, error)      { return value.Null(), nil }
func (ValueVisitor) VisitBool(b bool) (any, error) { return value.Bool(b), nil }
func (ValueVisitor) VisitF32(f float32) (any, error) { return value.F32(f), nil }
func (ValueVisitor) VisitF64(f float64) (any, error) { return value.F64(f), nil }
func (ValueVisitor) VisitInt(i value.Int) (any, error) { return value.IntValue(i), nil }
func (ValueVisitor) VisitBytes(b []byte) (any, error) { return value.Bytes(b), nil }
func (ValueVisitor) VisitString(s string) (any, error) { return value.String(s), nil }
func (ValueVisitor) VisitSymbol(s string) (any, error) { return value.Symbol(s), nil }
func (ValueVisitor) VisitArray(items []value.Value) (any, error) { return value.Array(items), nil }
func (ValueVisitor) VisitRecord(fields []value.Field) (any, error) { return value.Record(fields), nil }
func (ValueVisitor) VisitMap(entries []value.MapEntry) (any, error) { return value.Map(entries), nil }
