package locator

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/reslocator/pkg/workspace"
)

// Kind is the project shape that selects a fallback locator.
type Kind int

const (
	// KindPlain is a Java project without flexible module support.
	KindPlain Kind = iota
	// KindComponent is a flexible module that is not a web module.
	KindComponent
	// KindWeb is a flexible module with the web facet installed.
	KindWeb
)

func (k Kind) String() string {
	switch k {
	case KindWeb:
		return "web"
	case KindComponent:
		return "component"
	default:
		return "plain"
	}
}

// MarshalText renders the kind name in reports.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Classify determines the shape of p. Classification errors are logged and
// degrade the answer: a failing module check means plain, a failing facet
// check means generic component.
func Classify(c ProjectClassifier, p *workspace.Project, logger *log.Logger) Kind {
	if c == nil {
		return KindPlain
	}
	flexible, err := c.IsFlexibleModule(p)
	if err != nil {
		logger.Error("module classification failed", "project", p.Name, "op", "classify", "err", err)
		return KindPlain
	}
	if !flexible {
		return KindPlain
	}
	web, err := c.HasWebFacet(p)
	if err != nil {
		logger.Error("facet lookup failed", "project", p.Name, "op", "classify", "err", err)
		return KindComponent
	}
	if web {
		return KindWeb
	}
	return KindComponent
}
