// Package fallback provides the host-default resource locators used when
// build-aware resolution yields nothing.
//
// There is one locator per project shape:
//   - [Simple] for plain Java projects: lookups run over the raw classpath
//     source roots.
//   - [Module] for generic flexible components: lookups follow the deploy
//     mappings of the component descriptor.
//   - [Web] for web modules: like Module, with runtime paths rooted at
//     WEB-INF/classes.
//
// Module and Web behave like Simple for projects that have no component
// descriptor. None of the locators keep state between calls.
package fallback
