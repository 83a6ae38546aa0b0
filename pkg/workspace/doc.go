// Package workspace models the projects a locator works on.
//
// A [Project] is a directory handle; a [Path] is a cleaned, slash-separated
// location relative to that directory. Paths compare segment-wise, so
// "target/classes" is a prefix of "target/classes/META-INF" but not of
// "target/classes2".
//
// [BuildMetadata] is the build-tool view of a project (resource roots and
// output folders) and [ExistenceChecker] is the filesystem probe every
// candidate location is tested with.
package workspace
