package sem

import "strings"

// Visibility is the effective visibility of a symbol as observed from outside
// its declaring module.  Larger values are more restrictive.
type Visibility int

// Enumeration of visibility levels
const (
	VisibilityPublic Visibility = iota
	VisibilityInternal
	VisibilityPrivate

	// VisibilityFriend is a synonym for VisibilityInternal
	VisibilityFriend = VisibilityInternal
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	default:
		return "private"
	}
}

// EvaluateVisibility computes the effective visibility of a symbol by walking
// its containment chain.  The result is the least permissive link in the chain
// so it can only narrow as the chain is walked outward.
func EvaluateVisibility(sym *Symbol) Visibility {
	if sym == nil {
		return VisibilityPublic
	}

	switch sym.Kind {
	case KindAlias:
		// aliases are only visible in the file that declares them
		return VisibilityPrivate
	case KindParameter:
		return EvaluateVisibility(sym.Container)
	case KindTypeParameter:
		return VisibilityPrivate
	}

	visibility := VisibilityPublic
	for ; sym != nil && !sym.IsNamespace(); sym = sym.Container {
		switch sym.Accessibility {
		case AccessNotApplicable, AccessPrivate:
			return VisibilityPrivate
		case AccessInternal, AccessProtectedAndInternal:
			visibility = VisibilityInternal
		}

		// Public, Protected, and ProtectedOrInternal keep the current level
	}

	return visibility
}

// attributeSuffix is the conventional suffix of attribute type names
const attributeSuffix = "Attribute"

// HasAttributeSuffix returns whether or not `name` ends with the attribute
// suffix and has something in front of it
func HasAttributeSuffix(name string, caseSensitive bool) bool {
	if len(name) <= len(attributeSuffix) {
		return false
	}

	tail := name[len(name)-len(attributeSuffix):]
	if caseSensitive {
		return tail == attributeSuffix
	}

	return strings.EqualFold(tail, attributeSuffix)
}
