// Package pkg provides the libraries behind reslocator, a resource path
// resolver for Maven projects kept in an Eclipse-style workspace.
//
// # Overview
//
// A runtime path such as META-INF/persistence.xml names a resource as the
// running application sees it. The libraries find the project folder that
// provides it:
//
//	runtime path
//	     ↓
//	[locator] build resource roots (pom.xml, via [maven])
//	     ↓
//	[locator] source roots (.classpath, via [classpath])
//	     ↓
//	[locator/fallback] one fallback chosen by project kind ([facet])
//	     ↓
//	project path
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/reslocator/pkg/cache"
//	    "github.com/matzehuels/reslocator/pkg/locator"
//	    "github.com/matzehuels/reslocator/pkg/workspace"
//	)
//
//	p, _ := workspace.OpenProject("shop")
//	loc := locator.NewDefault(cache.NewNullCache(), nil)
//	path, ok := loc.Resolve(p, workspace.NewPath("META-INF/persistence.xml"))
//
// # Main Packages
//
// ## Resolution
//
// [locator] - The resolver: Resolve, IsLocationValid, DefaultLocation and
// RuntimePath, plus Explain, Find and ResolveAll for tooling.
//
// [locator/fallback] - The three fallback locators for plain Java projects,
// generic flexible modules and web modules.
//
// ## Project Metadata
//
// [maven] - pom.xml parsing with super-POM defaults and property
// interpolation. Provides build metadata and Maven source roots.
//
// [classpath] - Source roots and output location from .classpath.
//
// [facet] - Natures and installed facets; classifies projects.
//
// [component] - Deploy mappings of flexible modules.
//
// [lifecycle] - Marker records for the war and JSF lifecycle mappings.
//
// ## Infrastructure
//
// [workspace] - Project handles and the project-relative Path type.
//
// [cache] - Content-addressed cache for parsed pom.xml models.
//
// [preferences] - TOML preferences of the Maven integration.
//
// [watch] - Debounced change notification for project folders.
//
// [observability] - Hooks for resolution, cache and watch events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/locator/...            # Resolver and fallbacks
//
// [locator]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/locator
// [locator/fallback]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/locator/fallback
// [maven]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/maven
// [classpath]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/classpath
// [facet]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/facet
// [component]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/component
// [lifecycle]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/lifecycle
// [workspace]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/workspace
// [cache]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/cache
// [preferences]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/preferences
// [watch]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/watch
// [observability]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/reslocator/pkg/errors
package pkg
