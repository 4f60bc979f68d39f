package model

import "github.com/hupe1980/datgo/internal/textutil"

// HashMatch reports whether two items of the same type agree on every
// comparable hash. A hash present on only one side is a mismatch; hashes
// absent on both sides are ignored. Sizes are compared when both are known.
//
// Types without hashes match when all their non-name fields are equal.
func HashMatch(a, b *Item) bool {
	if a == nil || b == nil || a.Type != b.Type {
		return false
	}

	hashes := a.HashFields()
	if len(hashes) == 0 {
		return fieldsExceptName(a) == fieldsExceptName(b)
	}

	if as, ok := a.Size(); ok {
		if bs, ok := b.Size(); ok && as != bs {
			return false
		}
	}

	for _, t := range hashes {
		key := t.String()
		aHas, bHas := a.Fields.Has(key), b.Fields.Has(key)
		switch {
		case !aHas && !bHas:
			continue
		case aHas != bHas:
			return false
		case !textutil.EqualFold(a.Fields.GetString(key), b.Fields.GetString(key)):
			return false
		}
	}
	return true
}

// Equivalent reports whether two items are the same artifact: same type,
// same name and matching hashes. The set-hierarchy engine uses it to skip
// items a bucket already holds.
func Equivalent(a, b *Item) bool {
	if a == nil || b == nil || a.Type != b.Type {
		return false
	}
	if !textutil.EqualFold(a.Name(), b.Name()) {
		return false
	}
	if !a.Type.IsHashBearing() {
		return fieldsExceptName(a) == fieldsExceptName(b)
	}
	return HashMatch(a, b)
}

func fieldsExceptName(i *Item) string {
	doc := i.Fields.Clone()
	delete(doc, KeyName)
	return doc.Key()
}
