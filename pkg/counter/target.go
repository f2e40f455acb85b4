package counter

import (
	"github.com/go-drift/countup/pkg/errors"
	"github.com/go-drift/countup/pkg/platform"
)

// Target identifies the display element a counter writes to: either a
// direct handle or a locator resolved once through the host Document.
type Target interface {
	resolve(doc platform.Document) (platform.Element, error)
}

type elementTarget struct {
	el platform.Element
}

// Element targets el directly.
func Element(el platform.Element) Target {
	return elementTarget{el: el}
}

func (t elementTarget) resolve(platform.Document) (platform.Element, error) {
	if t.el == nil {
		return nil, errors.E(opNew, errors.KindElement, errors.ErrElementRequired, "")
	}
	return t.el, nil
}

// Locator targets the element a Document resolves for the string, such
// as "#visitors".
type Locator string

func (l Locator) resolve(doc platform.Document) (platform.Element, error) {
	if l == "" {
		return nil, errors.E(opNew, errors.KindElement, errors.ErrElementRequired, "")
	}
	if doc == nil {
		return nil, errors.E(opNew, errors.KindHost, errors.ErrDocumentRequired, string(l))
	}
	el := doc.QuerySelector(string(l))
	if el == nil {
		return nil, errors.E(opNew, errors.KindElement, errors.ErrElementNotFound, string(l))
	}
	return el, nil
}
