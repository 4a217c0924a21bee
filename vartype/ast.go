// Package vartype tokenizes and parses the C++-like type-expression
// mini-language used in FlattenedSerializerField.var_type, such as
// "CNetworkUtlVectorBase< CHandle< CBasePlayerController > >",
// "uint64[256]", "CDOTAGameManager*", and
// "CDOTA_AbilityDraftAbilityState[MAX_ABILITY_DRAFT_ABILITIES]".
package vartype

// Kind discriminates the Expr variants.
type Kind int

const (
	// KindIdent is a bare identifier, e.g. "uint32" or "CBaseEntity".
	KindIdent Kind = iota
	// KindTemplate is Ident<Expr>, e.g. "CHandle<CBaseEntity>".
	KindTemplate
	// KindArray is Expr[N], e.g. "uint64[256]".
	KindArray
	// KindPointer is Expr*, e.g. "CDOTAGameManager*".
	KindPointer
)

// Expr is a parsed type expression. Exactly the fields relevant to its Kind
// are populated; callers switch on Kind before reading them.
type Expr struct {
	Kind Kind

	// Ident holds the identifier for KindIdent, and the outer name for
	// KindTemplate (e.g. "CHandle" in CHandle<T>).
	Ident string

	// Inner holds the template argument for KindTemplate, or the element
	// expression for KindArray/KindPointer.
	Inner *Expr

	// ArrayLen holds the resolved array length for KindArray.
	ArrayLen int
}

// String renders the expression back to roughly its original syntax. Used
// for diagnostics and for the parser's reversibility property test.
func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindIdent:
		return e.Ident
	case KindTemplate:
		return e.Ident + "<" + e.Inner.String() + ">"
	case KindArray:
		return e.Inner.String() + "[" + itoa(e.ArrayLen) + "]"
	case KindPointer:
		return e.Inner.String() + "*"
	default:
		return ""
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
