package fielddecoder

import (
	"github.com/replaycore/s2demo/errs"
	"github.com/replaycore/s2demo/vartype"
)

// SpecialKind marks a field whose value isn't a single scalar decode: it
// wraps a decoder with array/vector/pointer structure.
type SpecialKind int

const (
	SpecialNone SpecialKind = iota
	SpecialFixedArray
	SpecialDynamicArray
	SpecialDynamicSerializerVector
	SpecialPointer
)

// SpecialDescriptor records the wrapping structure around a field's base
// decoder; ArrayLen is only meaningful for SpecialFixedArray.
type SpecialDescriptor struct {
	Kind     SpecialKind
	ArrayLen int
}

// FieldMetadata is the resolved decode plan for a field: how to decode one
// element (Decoder) and how the element is structurally wrapped (Special).
type FieldMetadata struct {
	Special SpecialDescriptor
	Decoder Decoder
}

// defaultDecoder backs every identifier this package doesn't special-case;
// the spec calls this out explicitly rather than treating it as an error,
// since the schema legitimately contains many enum-typed fields that are
// networked as a plain unsigned varint.
var defaultDecoder = u32Decoder{}

// Resolve selects a FieldMetadata for a parsed var_type AST and its field
// metadata, implementing the dispatch cascade: exceptional field names,
// then ident/template/array/pointer structural dispatch.
func Resolve(expr *vartype.Expr, meta *FieldMeta) (FieldMetadata, error) {
	if meta.VarName == "m_SpeechBubbles" || meta.VarName == "DOTA_CombatLogQueryProgress" {
		return FieldMetadata{
			Special: SpecialDescriptor{Kind: SpecialDynamicSerializerVector},
			Decoder: defaultDecoder,
		}, nil
	}
	return resolveExpr(expr, meta)
}

func resolveExpr(expr *vartype.Expr, meta *FieldMeta) (FieldMetadata, error) {
	switch expr.Kind {
	case vartype.KindIdent:
		return resolveIdent(expr.Ident, meta)
	case vartype.KindTemplate:
		return resolveTemplate(expr.Ident, expr.Inner, meta)
	case vartype.KindArray:
		return resolveArray(expr, meta)
	case vartype.KindPointer:
		return FieldMetadata{
			Special: SpecialDescriptor{Kind: SpecialPointer},
			Decoder: boolDecoder{},
		}, nil
	default:
		return FieldMetadata{}, errs.ErrUnimplementedDecoder
	}
}

func resolveIdent(ident string, meta *FieldMeta) (FieldMetadata, error) {
	plain := func(d Decoder) (FieldMetadata, error) {
		return FieldMetadata{Decoder: d}, nil
	}
	pointer := func() (FieldMetadata, error) {
		return FieldMetadata{
			Special: SpecialDescriptor{Kind: SpecialPointer},
			Decoder: boolDecoder{},
		}, nil
	}

	switch ident {
	case "int8", "int16", "int32":
		return plain(i32Decoder{})
	case "int64":
		return plain(i64Decoder{})
	case "uint8", "uint16", "uint32":
		return plain(u32Decoder{})
	case "uint64":
		return plain(u64Decoder{})
	case "bool":
		return plain(boolDecoder{})
	case "float32", "GameTime_t":
		return plain(f32Decoder{})
	case "char":
		return plain(stringDecoder{})
	case "CHandle":
		return plain(u32Decoder{})
	case "CStrongHandle", "MatchID_t", "itemid_t", "HeroFacetKey_t":
		return plain(u64Decoder{})
	case "BloodType":
		return plain(u32Decoder{})
	case "CBodyComponent", "CLightComponent", "CRenderComponent":
		return pointer()
	case "CUtlSymbolLarge", "CUtlString":
		return plain(stringDecoder{})
	case "QAngle":
		return plain(qangleDecoder{})
	case "Vector":
		return plain(vec3Decoder{})
	case "Vector2D":
		return plain(vec2Decoder{})
	case "Vector4D":
		return plain(vec4Decoder{})
	case "CNetworkedQuantizedFloat":
		return plain(quantizedFloatDecoder{})
	default:
		return plain(defaultDecoder)
	}
}

func resolveTemplate(ident string, inner *vartype.Expr, meta *FieldMeta) (FieldMetadata, error) {
	switch ident {
	case "CNetworkUtlVectorBase":
		if meta.HasFieldSerializerName {
			return FieldMetadata{
				Special: SpecialDescriptor{Kind: SpecialDynamicSerializerVector},
				Decoder: u32Decoder{},
			}, nil
		}
		elem, err := resolveExpr(inner, meta)
		if err != nil {
			return FieldMetadata{}, err
		}
		return FieldMetadata{
			Special: SpecialDescriptor{Kind: SpecialDynamicArray},
			Decoder: elem.Decoder,
		}, nil
	case "CUtlVectorEmbeddedNetworkVar", "CUtlVector":
		return FieldMetadata{
			Special: SpecialDescriptor{Kind: SpecialDynamicSerializerVector},
			Decoder: u32Decoder{},
		}, nil
	default:
		return resolveIdent(ident, meta)
	}
}

func resolveArray(expr *vartype.Expr, meta *FieldMeta) (FieldMetadata, error) {
	// char[N] decodes as a string, with no array wrapper.
	if expr.Inner.Kind == vartype.KindIdent && expr.Inner.Ident == "char" {
		return FieldMetadata{Decoder: stringDecoder{}}, nil
	}

	elem, err := resolveExpr(expr.Inner, meta)
	if err != nil {
		return FieldMetadata{}, err
	}
	return FieldMetadata{
		Special: SpecialDescriptor{Kind: SpecialFixedArray, ArrayLen: expr.ArrayLen},
		Decoder: elem.Decoder,
	}, nil
}
