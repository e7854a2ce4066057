package descriptor

// Wrapper types of the primitive kinds.
var wrappers = map[Kind]*TypeDescription{
	KindBoolean: NewClass("java/lang/Boolean", AccPublic|AccFinal, Object, Serializable),
	KindByte:    NewClass("java/lang/Byte", AccPublic|AccFinal, Number),
	KindShort:   NewClass("java/lang/Short", AccPublic|AccFinal, Number),
	KindChar:    NewClass("java/lang/Character", AccPublic|AccFinal, Object, Serializable),
	KindInt:     NewClass("java/lang/Integer", AccPublic|AccFinal, Number),
	KindLong:    NewClass("java/lang/Long", AccPublic|AccFinal, Number),
	KindFloat:   NewClass("java/lang/Float", AccPublic|AccFinal, Number),
	KindDouble:  NewClass("java/lang/Double", AccPublic|AccFinal, Number),
}

// Wrapper returns the wrapper class of a primitive kind, or nil.
func Wrapper(k Kind) *TypeDescription {
	return wrappers[k]
}

// Unwrap returns the primitive kind wrapped by t.
func Unwrap(t *TypeDescription) (Kind, bool) {
	for k, w := range wrappers {
		if w.Equal(t) {
			return k, true
		}
	}
	return KindVoid, false
}
