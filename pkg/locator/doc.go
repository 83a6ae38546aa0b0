// Package locator resolves runtime-relative resource paths to locations in a
// Maven project.
//
// # Resolution order
//
// [Locator.Resolve] tries three strategies and returns the first hit:
//
//  1. The resource roots declared by the build, in declaration order.
//  2. The project's source roots, in classpath order.
//  3. Exactly one fallback locator, chosen by the project's shape
//     (see [Kind]): web module, generic flexible component, or plain Java.
//
// Within a strategy the first root whose join with the logical path exists
// wins; nothing is merged across roots. Results are never cached, so every
// call reflects the filesystem as it is.
//
// # Errors
//
// No collaborator error crosses the package boundary. Missing build metadata
// moves on to the next strategy; a failing source root or classification
// lookup is logged with the project and operation and treated as empty.
//
// # Example
//
//	loc := locator.NewDefault(cache.NewNullCache(), logger)
//	p, _ := workspace.OpenProject("shop")
//	if path, ok := loc.Resolve(p, workspace.NewPath("META-INF/persistence.xml")); ok {
//	    fmt.Println(path)
//	}
package locator
