package docs

import (
	"fmt"
)

// ItemKind is the category of a documentable item, as rustdoc names it in
// page file names ("struct.Foo.html") and listing class attributes.
// The zero value means the kind is not known.
type ItemKind uint8

const (
	KindModule ItemKind = iota + 1
	KindExternCrate
	KindImport
	KindStruct
	KindUnion
	KindEnum
	KindFunction
	KindTypeAlias
	KindStatic
	KindTrait
	KindImpl
	KindRequiredMethod
	KindProvidedMethod
	KindStructField
	KindVariant
	KindMacro
	KindPrimitive
	KindAssocType
	KindConstant
	KindAssocConst
	KindForeignType
	KindKeyword
	KindAttributeMacro
	KindDeriveMacro
	KindTraitAlias
	KindAttribute

	kindCount = int(KindAttribute)
)

var kindTokens = [...]string{
	KindModule:         "mod",
	KindExternCrate:    "externcrate",
	KindImport:         "import",
	KindStruct:         "struct",
	KindUnion:          "union",
	KindEnum:           "enum",
	KindFunction:       "fn",
	KindTypeAlias:      "type",
	KindStatic:         "static",
	KindTrait:          "trait",
	KindImpl:           "impl",
	KindRequiredMethod: "tymethod",
	KindProvidedMethod: "method",
	KindStructField:    "structfield",
	KindVariant:        "variant",
	KindMacro:          "macro",
	KindPrimitive:      "primitive",
	KindAssocType:      "associatedtype",
	KindConstant:       "constant",
	KindAssocConst:     "associatedconstant",
	KindForeignType:    "foreigntype",
	KindKeyword:        "keyword",
	KindAttributeMacro: "attr",
	KindDeriveMacro:    "derive",
	KindTraitAlias:     "traitalias",
	KindAttribute:      "attribute",
}

var tokenKinds = func() map[string]ItemKind {
	m := make(map[string]ItemKind, kindCount)
	for k := KindModule; int(k) <= kindCount; k++ {
		m[kindTokens[k]] = k
	}
	return m
}()

// ParseItemKind returns the kind for a rustdoc token such as "struct" or "fn".
func ParseItemKind(token string) (ItemKind, error) {
	k, ok := tokenKinds[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, token)
	}
	return k, nil
}

// AllItemKinds returns every kind in declaration order.
func AllItemKinds() []ItemKind {
	kinds := make([]ItemKind, 0, kindCount)
	for k := KindModule; int(k) <= kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is one of the enumerated kinds.
func (k ItemKind) Valid() bool {
	return k >= KindModule && int(k) <= kindCount
}

// String returns the rustdoc token, or "" for an unset kind.
func (k ItemKind) String() string {
	if !k.Valid() {
		return ""
	}
	return kindTokens[k]
}

func (k ItemKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(kindTokens[k]), nil
}

func (k *ItemKind) UnmarshalText(text []byte) error {
	parsed, err := ParseItemKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Set and Type make *ItemKind usable as a pflag value.
func (k *ItemKind) Set(s string) error {
	return k.UnmarshalText([]byte(s))
}

func (k *ItemKind) Type() string {
	return "kind"
}
